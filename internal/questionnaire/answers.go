package questionnaire

// Answers holds the responses of one session keyed by question id.
// Iteration order is insertion order, which the controller keeps equal to
// question order.
type Answers struct {
	order  []string
	values map[string]string
}

func NewAnswers() *Answers {
	return &Answers{values: make(map[string]string)}
}

func (a *Answers) Get(id string) (string, bool) {
	v, ok := a.values[id]
	return v, ok
}

func (a *Answers) Set(id, value string) {
	if _, ok := a.values[id]; !ok {
		a.order = append(a.order, id)
	}
	a.values[id] = value
}

func (a *Answers) Delete(id string) {
	if _, ok := a.values[id]; !ok {
		return
	}
	delete(a.values, id)
	for i, k := range a.order {
		if k == id {
			a.order = append(a.order[:i], a.order[i+1:]...)
			break
		}
	}
}

func (a *Answers) Clear() {
	a.order = nil
	a.values = make(map[string]string)
}

func (a *Answers) Len() int { return len(a.order) }

// Keys returns the answered question ids in insertion order.
func (a *Answers) Keys() []string {
	return append([]string(nil), a.order...)
}

// Map returns a copy of the answers.
func (a *Answers) Map() map[string]string {
	out := make(map[string]string, len(a.values))
	for k, v := range a.values {
		out[k] = v
	}
	return out
}
