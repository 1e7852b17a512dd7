package session

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyInput    = errors.New("input is empty")
	ErrInvalidNumber = errors.New("input is not a number")
	ErrInvalidPIN    = errors.New("pin must be a whole number")
)

// Input is a raw form value. It unmarshals from either a JSON string or a
// JSON number and is converted only when a command is built.
type Input string

func (in *Input) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*in = ""
		return nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*in = Input(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("input must be a string or a number: %w", err)
	}
	*in = Input(n.String())
	return nil
}

// Decimal parses the input after trimming surrounding whitespace.
func (in Input) Decimal() (decimal.Decimal, error) {
	s := strings.TrimSpace(string(in))
	if s == "" {
		return decimal.Zero, ErrEmptyInput
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	return d, nil
}

// Int parses the input as a whole number, so "01111" and "1111.0" both give 1111.
func (in Input) Int() (int, error) {
	d, err := in.Decimal()
	if err != nil {
		return 0, err
	}
	if !d.Equal(d.Truncate(0)) || d.Abs().GreaterThan(decimal.NewFromInt(1<<31)) {
		return 0, ErrInvalidPIN
	}
	return int(d.IntPart()), nil
}

type LoginRequest struct {
	UserName string `json:"username"`
	PIN      Input  `json:"pin"`
}

type TransferRequest struct {
	To     string `json:"to"`
	Amount Input  `json:"amount"`
}

type LoanRequest struct {
	Amount Input `json:"amount"`
}

type CloseRequest struct {
	UserName string `json:"username"`
	PIN      Input  `json:"pin"`
}

type LoginCommand struct {
	UserName string
	PIN      int
}

type TransferCommand struct {
	To     string
	Amount decimal.Decimal
}

type LoanCommand struct {
	Amount decimal.Decimal
}

type CloseCommand struct {
	UserName string
	PIN      int
}

func (r LoginRequest) Command() (LoginCommand, error) {
	pin, err := r.PIN.Int()
	if err != nil {
		return LoginCommand{}, err
	}
	return LoginCommand{UserName: strings.TrimSpace(r.UserName), PIN: pin}, nil
}

func (r TransferRequest) Command() (TransferCommand, error) {
	amount, err := r.Amount.Decimal()
	if err != nil {
		return TransferCommand{}, err
	}
	return TransferCommand{To: strings.TrimSpace(r.To), Amount: amount}, nil
}

// Command floors the requested amount to whole units.
func (r LoanRequest) Command() (LoanCommand, error) {
	amount, err := r.Amount.Decimal()
	if err != nil {
		return LoanCommand{}, err
	}
	return LoanCommand{Amount: amount.Floor()}, nil
}

func (r CloseRequest) Command() (CloseCommand, error) {
	pin, err := r.PIN.Int()
	if err != nil {
		return CloseCommand{}, err
	}
	return CloseCommand{UserName: strings.TrimSpace(r.UserName), PIN: pin}, nil
}
