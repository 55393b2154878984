package domain

import (
	"github.com/yungbote/jeevandwaar-backend/internal/domain/advisor"
	"github.com/yungbote/jeevandwaar-backend/internal/domain/catalog"
	"github.com/yungbote/jeevandwaar-backend/internal/domain/mitra"
	"github.com/yungbote/jeevandwaar-backend/internal/domain/user"
)

type User = user.User

type Policy = catalog.Policy
type UserPolicy = catalog.UserPolicy

type PolicyRecommendation = advisor.PolicyRecommendation
type ChatbotQuery = advisor.ChatbotQuery
type PopularQuestion = advisor.PopularQuestion

type Mitra = mitra.Mitra
type NearbyMitra = mitra.Nearby

// Models lists every persisted row type in migration order.
func Models() []any {
	return []any{
		&User{},
		&Policy{},
		&UserPolicy{},
		&PolicyRecommendation{},
		&ChatbotQuery{},
		&Mitra{},
	}
}
