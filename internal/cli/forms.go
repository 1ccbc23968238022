package cli

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/charmbracelet/huh"
)

// runCategoryForm collects category fields interactively, filling c.
func runCategoryForm(c *domain.Category) error {
	focus := strconv.Itoa(c.FocusMinutes)
	brk := strconv.Itoa(c.BreakMinutes)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Placeholder("Deep Reading").
				Value(&c.Name).
				Validate(validateRequired("name")),
			huh.NewInput().
				Title("Default focus minutes").
				Placeholder("25").
				Value(&focus).
				Validate(validatePositiveInt),
			huh.NewInput().
				Title("Default break minutes").
				Placeholder("5").
				Value(&brk).
				Validate(validateNonNegativeInt),
			huh.NewInput().
				Title("Color (hex, blank for default)").
				Placeholder(domain.DefaultColor).
				Value(&c.Color),
		),
	).WithShowHelp(false)

	if err := form.Run(); err != nil {
		return err
	}

	c.FocusMinutes, _ = strconv.Atoi(focus)
	c.BreakMinutes, _ = strconv.Atoi(brk)
	return nil
}

func validateRequired(field string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func validatePositiveInt(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return fmt.Errorf("enter a positive number")
	}
	return nil
}

func validateNonNegativeInt(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return fmt.Errorf("enter zero or a positive number")
	}
	return nil
}
