package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/finmate/internal/budget"
	"github.com/theirongolddev/finmate/internal/cli"
	"github.com/theirongolddev/finmate/internal/model"

	"github.com/charmbracelet/huh"
	"github.com/shopspring/decimal"
)

// OnboardValues holds the raw answers of the onboarding form.
type OnboardValues struct {
	Role   string
	Income string
	Fixed  string // one Name=Amount per line
}

// Parse converts the answers into onboarding arguments.
func (v OnboardValues) Parse() (model.Role, decimal.Decimal, []model.FixedExpense, error) {
	role, ok := model.ParseRole(v.Role)
	if !ok {
		return "", decimal.Zero, nil, &budget.InvalidRoleError{Role: model.Role(v.Role)}
	}
	income, err := cli.ParseAmount(v.Income)
	if err != nil {
		return "", decimal.Zero, nil, fmt.Errorf("income: %w", err)
	}
	if income.IsNegative() {
		return "", decimal.Zero, nil, fmt.Errorf("income: %w", budget.ErrNegativeAmount)
	}
	fixed, err := cli.ParseFixedExpenses(v.Fixed)
	if err != nil {
		return "", decimal.Zero, nil, err
	}
	return role, income, fixed, nil
}

func validateIncome(s string) error {
	d, err := cli.ParseAmount(s)
	if err != nil {
		return err
	}
	if d.IsNegative() {
		return budget.ErrNegativeAmount
	}
	return nil
}

func validateFixed(s string) error {
	_, err := cli.ParseFixedExpenses(s)
	return err
}

// NewOnboardForm builds the profile questionnaire. Answers are written to v
// as the user types; v may carry defaults from an existing profile.
func NewOnboardForm(v *OnboardValues) *huh.Form {
	roles := make([]string, len(model.Roles))
	for i, r := range model.Roles {
		roles[i] = string(r)
	}
	if v.Role == "" {
		v.Role = string(model.RoleProfessional)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to finmate").
				Description("Three questions and your daily spending limit is ready."),
			huh.NewSelect[string]().
				Title("Which describes you best?").
				Description("Picks how income is split between needs, wants and savings.").
				Options(huh.NewOptions(roles...)...).
				Value(&v.Role),
			huh.NewInput().
				Title("Monthly income").
				Placeholder("50000").
				Value(&v.Income).
				Validate(validateIncome),
			huh.NewText().
				Title("Fixed monthly expenses").
				Description("One per line as Name=Amount, e.g. Rent=12000. Leave empty if none.").
				Value(&v.Fixed).
				Validate(validateFixed),
		),
	).WithShowHelp(true)
}

// ValuesFromProfile pre-fills the form with an existing profile.
func ValuesFromProfile(p model.Profile) OnboardValues {
	lines := make([]string, 0, len(p.FixedExpenses))
	for _, fe := range p.FixedExpenses {
		lines = append(lines, fe.Name+"="+fe.Amount.String())
	}
	v := OnboardValues{
		Role:  string(p.Role),
		Fixed: strings.Join(lines, "\n"),
	}
	if !p.Income.IsZero() {
		v.Income = p.Income.String()
	}
	return v
}
