// Package rules holds the fixed decision tables behind the recommender and the FAQ chatbot.
// Both are pure functions of their input.
package rules

const (
	PlanBasic   = "basic-plan"
	PlanFamily  = "family-plan"
	PlanPremium = "premium-plan"
	PlanSenior  = "senior-plan"
)

// Profile is the recommender input. Nil fields were not supplied by the caller.
type Profile struct {
	Age         *int
	IncomeRange *string
	Dependents  *int
	Goal        *string
}

// Recommend returns the ordered candidate plan ids for p.
//
// Income and dependents pick the tier; age only picks between the two candidates of a tier.
// A missing age belongs to no age bucket and a missing dependents count is zero.
func Recommend(p Profile) []string {
	income := ""
	if p.IncomeRange != nil {
		income = *p.IncomeRange
	}
	dependents := 0
	if p.Dependents != nil {
		dependents = *p.Dependents
	}

	switch {
	case income == "high" || dependents >= 4:
		if ageAbove(p.Age, 45) {
			return []string{PlanPremium, PlanSenior}
		}
		return []string{PlanPremium, PlanFamily}
	case income == "medium" || dependents >= 2:
		if ageBetween(p.Age, 31, 45) {
			return []string{PlanFamily, PlanPremium}
		}
		return []string{PlanBasic, PlanFamily}
	default:
		return []string{PlanBasic, PlanFamily}
	}
}

func ageAbove(age *int, limit int) bool {
	return age != nil && *age > limit
}

func ageBetween(age *int, lo, hi int) bool {
	return age != nil && *age >= lo && *age <= hi
}
