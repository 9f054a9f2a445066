package subscription

import domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/subscription"

type ListPlans struct {
	plans *domain.Catalog
}

func NewListPlans(plans *domain.Catalog) *ListPlans {
	return &ListPlans{plans: plans}
}

func (uc *ListPlans) Execute() []domain.Plan {
	return uc.plans.Plans()
}
