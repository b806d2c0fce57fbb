package master

// Step is one reveal step of a slide.
type Step struct {
	No    int    `json:"no"`
	Title string `json:"title"`
}

// StepCollector accumulates the steps of one slide. Steps are numbered from 1
// in insertion order.
type StepCollector struct {
	steps []Step
}

func (c *StepCollector) Add(title string) {
	c.steps = append(c.steps, Step{No: len(c.steps) + 1, Title: title})
}

// Steps returns a copy of the collected steps.
func (c *StepCollector) Steps() []Step {
	out := make([]Step, len(c.steps))
	copy(out, c.steps)
	return out
}

func (c *StepCollector) Len() int { return len(c.steps) }

// Truncate drops every step after the first n.
func (c *StepCollector) Truncate(n int) {
	if n < len(c.steps) {
		c.steps = c.steps[:n]
	}
}

func (c *StepCollector) Reset() { c.steps = nil }
