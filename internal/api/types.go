package api

import (
	"strings"
	"time"

	"github.com/moneta-cli/moneta/internal/model"
)

// userWire is the raw user object as the API sends it.
type userWire struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (w userWire) toModel() model.User {
	return model.User{ID: w.ID, Name: w.Name, Email: w.Email}
}

// loginResponse is the flattened user-plus-token shape of POST /users/login.
type loginResponse struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}

// registerResponse is the nested shape of POST /users/register.
type registerResponse struct {
	User  userWire `json:"user"`
	Token string   `json:"token"`
}

// ProfilePatch is a partial profile update. Nil fields are left unchanged.
type ProfilePatch struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
}

// budgetWire is the raw budget object. Older API versions sent the spending
// limit as "amount"; current ones send "limit". Both are kept as pointers so
// normalization can tell absent from zero.
type budgetWire struct {
	ID       string   `json:"_id"`
	Category string   `json:"category"`
	Limit    *float64 `json:"limit"`
	Amount   *float64 `json:"amount"`
	Spent    *float64 `json:"spent"`
	Period   string   `json:"period"`
}

// toModel normalizes the limit/amount aliasing and defaults missing
// numeric fields to zero.
func (w budgetWire) toModel() model.Budget {
	b := model.Budget{
		ID:       w.ID,
		Category: w.Category,
		Period:   w.Period,
	}
	switch {
	case w.Limit != nil:
		b.Limit = *w.Limit
	case w.Amount != nil:
		b.Limit = *w.Amount
	}
	if w.Spent != nil {
		b.Spent = *w.Spent
	}
	return b
}

// BudgetInput is the payload for creating or updating a budget.
type BudgetInput struct {
	Category string  `json:"category"`
	Limit    float64 `json:"limit"`
	Period   string  `json:"period"`
}

// transactionWire is the raw transaction object. Date arrives as an
// ISO-8601 string.
type transactionWire struct {
	ID          string  `json:"_id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Type        string  `json:"type"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
	Notes       string  `json:"notes"`
}

func (w transactionWire) toModel() model.Transaction {
	return model.Transaction{
		ID:          w.ID,
		Description: w.Description,
		Amount:      w.Amount,
		Type:        model.TransactionType(strings.ToLower(w.Type)),
		Category:    w.Category,
		Date:        parseDate(w.Date),
		Notes:       w.Notes,
	}
}

// parseDate accepts the timestamp formats the API has historically used.
// Unparseable dates come back zero; consumers sort and format, never fail.
func parseDate(s string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// TransactionInput is the payload for creating or updating a transaction.
type TransactionInput struct {
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Type        string    `json:"type"`
	Category    string    `json:"category"`
	Date        time.Time `json:"date"`
	Notes       string    `json:"notes,omitempty"`
}

// alertsResponse is the shape of GET /budgets/check-spending.
type alertsResponse struct {
	Alerts []string `json:"alerts"`
}
