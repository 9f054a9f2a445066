package subscription

type Usage struct {
	Used      int  `json:"used"`
	Limit     int  `json:"limit"`
	Remaining int  `json:"remaining"`
	Unlimited bool `json:"unlimited"`
}

func NewUsage(used int, plan Plan) Usage {
	if plan.Unlimited() {
		return Usage{Used: used, Unlimited: true}
	}

	remaining := plan.MonthlyLimit - used
	if remaining < 0 {
		remaining = 0
	}
	return Usage{Used: used, Limit: plan.MonthlyLimit, Remaining: remaining}
}

func (u Usage) Exhausted() bool {
	return !u.Unlimited && u.Used >= u.Limit
}
