package content

import (
	"context"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	blevequery "github.com/blevesearch/bleve/v2/search/query"
)

const (
	DefaultSearchLimit = 10
	MaxSearchLimit     = 50

	titleBoost = 2.0
)

type articleDoc struct {
	ArticleID string `json:"articleId"`
	Language  string `json:"language"`
	Title     string `json:"title"`
	Body      string `json:"body"`
}

// SearchHit is one matching article rendered in the language that matched.
type SearchHit struct {
	Article ArticleView `json:"article"`
	Score   float64     `json:"score"`
}

// Index is an in-memory full-text index over the catalog's articles, one document per language.
type Index struct {
	index   bleve.Index
	catalog *Catalog
}

func NewIndex(c *Catalog) (*Index, error) {
	im := bleve.NewIndexMapping()

	docMapping := bleve.NewDocumentMapping()
	text := bleve.NewTextFieldMapping()
	text.Analyzer = standard.Name
	docMapping.AddFieldMappingsAt("title", text)
	docMapping.AddFieldMappingsAt("body", text)
	kw := bleve.NewTextFieldMapping()
	kw.Analyzer = keyword.Name
	docMapping.AddFieldMappingsAt("articleId", kw)
	docMapping.AddFieldMappingsAt("language", kw)
	im.DefaultMapping = docMapping

	idx, err := bleve.NewMemOnly(im)
	if err != nil {
		return nil, fmt.Errorf("create article index: %w", err)
	}
	batch := idx.NewBatch()
	for _, a := range c.Articles {
		for _, lang := range []string{"hindi", "english"} {
			v := a.View(lang)
			if v.Title == "" && v.Body == "" {
				continue
			}
			doc := articleDoc{ArticleID: a.ID, Language: lang, Title: v.Title, Body: v.Body}
			if err := batch.Index(a.ID+":"+lang, doc); err != nil {
				_ = idx.Close()
				return nil, fmt.Errorf("index article %s: %w", a.ID, err)
			}
		}
	}
	if err := idx.Batch(batch); err != nil {
		_ = idx.Close()
		return nil, fmt.Errorf("index articles: %w", err)
	}
	return &Index{index: idx, catalog: c}, nil
}

// Search matches q against title and body. When language is set only that language's
// documents are considered. Each article appears at most once.
func (ix *Index) Search(ctx context.Context, q, language string, limit int) ([]SearchHit, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return []SearchHit{}, nil
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	if limit > MaxSearchLimit {
		limit = MaxSearchLimit
	}

	title := bleve.NewMatchQuery(q)
	title.SetField("title")
	title.SetBoost(titleBoost)
	body := bleve.NewMatchQuery(q)
	body.SetField("body")
	var query blevequery.Query = bleve.NewDisjunctionQuery(title, body)
	if language != "" {
		lang := bleve.NewTermQuery(language)
		lang.SetField("language")
		query = bleve.NewConjunctionQuery(query, lang)
	}

	req := bleve.NewSearchRequest(query)
	req.Size = limit * 2
	req.Fields = []string{"articleId", "language"}
	res, err := ix.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("article search: %w", err)
	}

	out := make([]SearchHit, 0, limit)
	seen := map[string]bool{}
	for _, hit := range res.Hits {
		id, _ := hit.Fields["articleId"].(string)
		lang, _ := hit.Fields["language"].(string)
		if id == "" || seen[id] {
			continue
		}
		a, ok := ix.catalog.Article(id)
		if !ok {
			continue
		}
		seen[id] = true
		out = append(out, SearchHit{Article: a.View(lang), Score: hit.Score})
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (ix *Index) Close() error {
	return ix.index.Close()
}
