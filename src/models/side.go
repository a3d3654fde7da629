package models

import "fmt"

type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

func (s Side) Validate() error {
	if s != SideBuy && s != SideSell {
		return fmt.Errorf("Side: Validate: invalid side: %s", s)
	}

	return nil
}
