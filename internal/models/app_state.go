package models

// AppState is the aggregate root held by the store.
type AppState struct {
	CurrentUser     *User         `json:"currentUser"`
	IsAuthenticated bool          `json:"isAuthenticated"`
	Transactions    []Transaction `json:"transactions"`
	Categories      []Category    `json:"categories"`
	DateRange       DateRange     `json:"dateRange"`
}

// Clone returns a deep copy of the state.
func (s AppState) Clone() AppState {
	out := s
	if s.CurrentUser != nil {
		u := *s.CurrentUser
		out.CurrentUser = &u
	}
	out.Transactions = append([]Transaction(nil), s.Transactions...)
	out.Categories = append([]Category(nil), s.Categories...)
	if out.Transactions == nil {
		out.Transactions = []Transaction{}
	}
	if out.Categories == nil {
		out.Categories = []Category{}
	}
	return out
}

// FindTransaction returns the transaction with the given id.
func (s AppState) FindTransaction(id string) (Transaction, bool) {
	for _, t := range s.Transactions {
		if t.ID == id {
			return t, true
		}
	}
	return Transaction{}, false
}

// FindCategory returns the category with the given id.
func (s AppState) FindCategory(id string) (Category, bool) {
	for _, c := range s.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}
