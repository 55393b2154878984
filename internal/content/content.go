package content

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"

	types "github.com/yungbote/jeevandwaar-backend/internal/domain"
	"github.com/yungbote/jeevandwaar-backend/internal/domain/catalog"
	"github.com/yungbote/jeevandwaar-backend/internal/platform/ctxutil"
)

// CatalogPathEnv points at a YAML file that replaces the embedded catalog.
const CatalogPathEnv = "CONTENT_CATALOG_YAML"

//go:embed catalog.yaml
var catalogFS embed.FS

// Text is a bilingual string.
type Text struct {
	Hindi   string `yaml:"hindi"`
	English string `yaml:"english"`
}

// In returns the text for language, falling back to the other language when empty.
func (t Text) In(language string) string {
	if language == ctxutil.LanguageEnglish {
		if t.English != "" {
			return t.English
		}
		return t.Hindi
	}
	if t.Hindi != "" {
		return t.Hindi
	}
	return t.English
}

type PolicySeed struct {
	ID             string   `yaml:"id"`
	Name           string   `yaml:"name"`
	Description    string   `yaml:"description"`
	CoverageAmount float64  `yaml:"coverageAmount"`
	MonthlyPremium float64  `yaml:"monthlyPremium"`
	AgeGroup       string   `yaml:"ageGroup"`
	Duration       int      `yaml:"duration"`
	IsActive       bool     `yaml:"isActive"`
	Features       []string `yaml:"features"`
	Exclusions     []string `yaml:"exclusions"`
}

func (p PolicySeed) Model() *types.Policy {
	return &types.Policy{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		CoverageAmount: p.CoverageAmount,
		MonthlyPremium: p.MonthlyPremium,
		AgeGroup:       p.AgeGroup,
		Duration:       p.Duration,
		IsActive:       p.IsActive,
		Features:       jsonStrings(p.Features),
		Exclusions:     jsonStrings(p.Exclusions),
	}
}

type MitraSeed struct {
	ID        string   `yaml:"id"`
	Name      string   `yaml:"name"`
	Phone     string   `yaml:"phone"`
	Area      string   `yaml:"area"`
	SHGGroup  string   `yaml:"shgGroup"`
	Pincode   string   `yaml:"pincode"`
	Latitude  *float64 `yaml:"latitude"`
	Longitude *float64 `yaml:"longitude"`
	Rating    *float64 `yaml:"rating"`
	Languages []string `yaml:"languages"`
	IsActive  bool     `yaml:"isActive"`
}

func (m MitraSeed) Model() *types.Mitra {
	return &types.Mitra{
		ID:        m.ID,
		Name:      m.Name,
		Phone:     m.Phone,
		Area:      m.Area,
		Languages: append([]string(nil), m.Languages...),
		IsActive:  m.IsActive,
		Rating:    m.Rating,
		SHGGroup:  m.SHGGroup,
		Pincode:   m.Pincode,
		Latitude:  m.Latitude,
		Longitude: m.Longitude,
	}
}

// Identity is a dev-only directory entry keyed by Aadhar number.
type Identity struct {
	AadharID string `yaml:"aadharId"`
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Phone    string `yaml:"phone"`
	Role     string `yaml:"role"`
}

type Fund struct {
	Code          string  `yaml:"code"`
	Category      string  `yaml:"category"`
	Name          Text    `yaml:"name"`
	Risk          Text    `yaml:"risk"`
	NAV           float64 `yaml:"nav"`
	ChangePercent float64 `yaml:"changePercent"`
	ChangeValue   float64 `yaml:"changeValue"`
}

type FundView struct {
	Code          string  `json:"code"`
	Category      string  `json:"category"`
	Name          string  `json:"name"`
	Risk          string  `json:"risk"`
	NAV           float64 `json:"nav"`
	ChangePercent float64 `json:"changePercent"`
	ChangeValue   float64 `json:"changeValue"`
	IsPositive    bool    `json:"isPositive"`
}

func (f Fund) View(language string) FundView {
	return FundView{
		Code:          f.Code,
		Category:      f.Category,
		Name:          f.Name.In(language),
		Risk:          f.Risk.In(language),
		NAV:           f.NAV,
		ChangePercent: f.ChangePercent,
		ChangeValue:   f.ChangeValue,
		IsPositive:    f.ChangePercent >= 0,
	}
}

type Article struct {
	ID    string `yaml:"id"`
	Kind  string `yaml:"kind"`
	Level Text   `yaml:"level"`
	Title Text   `yaml:"title"`
	Body  Text   `yaml:"body"`
}

type ArticleView struct {
	ID       string `json:"id"`
	Kind     string `json:"kind"`
	Level    string `json:"level"`
	Title    string `json:"title"`
	Body     string `json:"body"`
	Language string `json:"language"`
}

func (a Article) View(language string) ArticleView {
	if language != ctxutil.LanguageEnglish {
		language = ctxutil.LanguageHindi
	}
	return ArticleView{
		ID:       a.ID,
		Kind:     a.Kind,
		Level:    a.Level.In(language),
		Title:    a.Title.In(language),
		Body:     a.Body.In(language),
		Language: language,
	}
}

type Catalog struct {
	Policies   []PolicySeed `yaml:"policies"`
	Mitras     []MitraSeed  `yaml:"mitras"`
	Identities []Identity   `yaml:"identities"`
	Funds      []Fund       `yaml:"funds"`
	Articles   []Article    `yaml:"articles"`

	articleByID map[string]int
}

// Load reads the catalog from CONTENT_CATALOG_YAML when set, otherwise the embedded copy.
func Load() (*Catalog, error) {
	data, err := readCatalog()
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	c.articleByID = make(map[string]int, len(c.Articles))
	for i, a := range c.Articles {
		c.articleByID[a.ID] = i
	}
	return &c, nil
}

func readCatalog() ([]byte, error) {
	if path := strings.TrimSpace(os.Getenv(CatalogPathEnv)); path != "" {
		return os.ReadFile(path)
	}
	return catalogFS.ReadFile("catalog.yaml")
}

func (c *Catalog) validate() error {
	seen := map[string]bool{}
	for _, p := range c.Policies {
		if strings.TrimSpace(p.ID) == "" {
			return errors.New("catalog: policy with empty id")
		}
		if seen["policy:"+p.ID] {
			return fmt.Errorf("catalog: duplicate policy %q", p.ID)
		}
		seen["policy:"+p.ID] = true
		if !catalog.IsAgeGroup(p.AgeGroup) {
			return fmt.Errorf("catalog: policy %q has invalid ageGroup %q", p.ID, p.AgeGroup)
		}
	}
	for _, m := range c.Mitras {
		if strings.TrimSpace(m.ID) == "" {
			return errors.New("catalog: mitra with empty id")
		}
		if seen["mitra:"+m.ID] {
			return fmt.Errorf("catalog: duplicate mitra %q", m.ID)
		}
		seen["mitra:"+m.ID] = true
		if (m.Latitude == nil) != (m.Longitude == nil) {
			return fmt.Errorf("catalog: mitra %q needs both latitude and longitude", m.ID)
		}
	}
	for _, a := range c.Articles {
		if strings.TrimSpace(a.ID) == "" {
			return errors.New("catalog: article with empty id")
		}
		if seen["article:"+a.ID] {
			return fmt.Errorf("catalog: duplicate article %q", a.ID)
		}
		seen["article:"+a.ID] = true
	}
	return nil
}

func (c *Catalog) PolicyModels() []*types.Policy {
	out := make([]*types.Policy, 0, len(c.Policies))
	for _, p := range c.Policies {
		out = append(out, p.Model())
	}
	return out
}

func (c *Catalog) MitraModels() []*types.Mitra {
	out := make([]*types.Mitra, 0, len(c.Mitras))
	for _, m := range c.Mitras {
		out = append(out, m.Model())
	}
	return out
}

func (c *Catalog) FundViews(language string) []FundView {
	out := make([]FundView, 0, len(c.Funds))
	for _, f := range c.Funds {
		out = append(out, f.View(language))
	}
	return out
}

func (c *Catalog) ArticleViews(language string) []ArticleView {
	out := make([]ArticleView, 0, len(c.Articles))
	for _, a := range c.Articles {
		out = append(out, a.View(language))
	}
	return out
}

func (c *Catalog) Article(id string) (Article, bool) {
	i, ok := c.articleByID[id]
	if !ok {
		return Article{}, false
	}
	return c.Articles[i], true
}

func jsonStrings(v []string) datatypes.JSON {
	if v == nil {
		v = []string{}
	}
	b, _ := json.Marshal(v)
	return datatypes.JSON(b)
}
