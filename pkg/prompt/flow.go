package prompt

import (
	"context"
	"errors"
	"fmt"

	"github.com/oarkflow/chatapp/pkg/form"
	"github.com/oarkflow/chatapp/pkg/models"
)

var genderOptions = []string{"Male", "Female", "Skip"}

// Run asks for every field, submits the form and, after a failed attempt,
// offers to try again with the previous answers as defaults. Passwords
// are always asked again.
func Run(ctx context.Context, d Driver, ctrl *form.Controller) (models.RegisterResponse, error) {
	for {
		if err := fill(ctx, d, ctrl); err != nil {
			return models.RegisterResponse{}, err
		}
		resp, err := ctrl.Submit(ctx)
		if err == nil {
			return resp, nil
		}
		if errors.Is(err, form.ErrNavigated) || errors.Is(err, form.ErrSubmitInFlight) {
			return resp, err
		}
		again, cerr := d.Confirm(ctx, ConfirmConfig{Message: "Try again?", Default: true})
		if cerr != nil {
			return resp, cerr
		}
		if !again {
			return resp, err
		}
	}
}

func fill(ctx context.Context, d Driver, ctrl *form.Controller) error {
	current := ctrl.Form()
	text := []struct {
		id      models.FieldID
		message string
		value   string
	}{
		{models.FieldFullName, "Full name", current.FullName},
		{models.FieldUsername, "Username", current.Username},
		{models.FieldEmail, "Email", current.Email},
	}
	for _, f := range text {
		v, err := d.Input(ctx, InputConfig{Message: f.message, Default: f.value, Required: true})
		if err != nil {
			return fmt.Errorf("%s: %w", f.id, err)
		}
		ctrl.UpdateField(f.id, v)
	}

	secrets := []struct {
		id      models.FieldID
		message string
	}{
		{models.FieldPassword, "Password"},
		{models.FieldConfirmPassword, "Confirm password"},
	}
	for _, f := range secrets {
		v, err := d.Password(ctx, InputConfig{Message: f.message, Required: true})
		if err != nil {
			return fmt.Errorf("%s: %w", f.id, err)
		}
		ctrl.UpdateField(f.id, v)
	}

	idx, err := d.Select(ctx, SelectConfig{
		Message:      "Gender",
		Options:      genderOptions,
		DefaultIndex: genderIndex(current.Gender),
	})
	if err != nil {
		return fmt.Errorf("%s: %w", models.FieldGender, err)
	}
	chooseGender(ctrl, idx)
	return nil
}

func genderIndex(g models.Gender) int {
	switch g {
	case models.GenderMale:
		return 0
	case models.GenderFemale:
		return 1
	default:
		return 2
	}
}

// chooseGender maps a select answer onto toggles so the controller stays
// the only place that decides the selection.
func chooseGender(ctrl *form.Controller, idx int) {
	current := ctrl.Form().Gender
	var want models.Gender
	switch idx {
	case 0:
		want = models.GenderMale
	case 1:
		want = models.GenderFemale
	}
	switch {
	case want == current:
	case want == models.GenderUnset:
		ctrl.ToggleGender(current)
	default:
		ctrl.ToggleGender(want)
	}
}
