package subscription

import "sort"

// Plan limits how many bookings a business may receive per subscription
// window. MonthlyLimit 0 means unlimited.
type Plan struct {
	Key          string `json:"key"`
	Name         string `json:"name"`
	MonthlyLimit int    `json:"monthly_limit"`
}

func (p Plan) Unlimited() bool {
	return p.MonthlyLimit <= 0
}

func DefaultPlans() []Plan {
	return []Plan{
		{Key: "bronze", Name: "Bronze", MonthlyLimit: 20},
		{Key: "silver", Name: "Prata", MonthlyLimit: 60},
		{Key: "gold", Name: "Ouro", MonthlyLimit: 200},
	}
}

type Catalog struct {
	plans map[string]Plan
}

func NewCatalog(plans []Plan) *Catalog {
	c := &Catalog{plans: make(map[string]Plan, len(plans))}
	for _, p := range plans {
		c.plans[p.Key] = p
	}
	return c
}

func (c *Catalog) Lookup(key string) (Plan, bool) {
	p, ok := c.plans[key]
	return p, ok
}

// Plans lists the catalog ordered by limit, unlimited plans last.
func (c *Catalog) Plans() []Plan {
	out := make([]Plan, 0, len(c.plans))
	for _, p := range c.plans {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Unlimited() != b.Unlimited() {
			return !a.Unlimited()
		}
		if a.MonthlyLimit != b.MonthlyLimit {
			return a.MonthlyLimit < b.MonthlyLimit
		}
		return a.Key < b.Key
	})
	return out
}
