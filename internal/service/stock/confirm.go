package stock

import (
	"errors"
	"fmt"
)

// Confirmation phrases the user must type to complete a bulk clear.
const (
	ClearInventoryPhrase = "BORRAR TODO EL INVENTARIO"
	ClearSalesPhrase     = "BORRAR TODAS LAS VENTAS"
)

var (
	// ErrConfirmationMismatch is returned when the typed confirmation phrase
	// does not exactly match the required one.
	ErrConfirmationMismatch = errors.New("confirmation mismatch")

	// ErrConfirmationSequence is returned when a clear step is invoked out of
	// order.
	ErrConfirmationSequence = errors.New("confirmation step out of order")
)

type clearStage int

const (
	stageIdle clearStage = iota
	stageAwaitingFirst
	stageAwaitingTyped
)

// clearConfirmation tracks the two-step confirmation sequence guarding one
// destructive bulk action: idle -> awaiting-first-confirmation ->
// awaiting-typed-confirmation. The exact phrase is a precondition for the
// terminal transition; any mismatch aborts the whole sequence.
type clearConfirmation struct {
	phrase string
	stage  clearStage
}

func newClearConfirmation(phrase string) *clearConfirmation {
	return &clearConfirmation{phrase: phrase}
}

// request starts the sequence.
func (c *clearConfirmation) request() error {
	if c.stage != stageIdle {
		c.stage = stageIdle
		return fmt.Errorf("%w: sequence restarted, request again", ErrConfirmationSequence)
	}
	c.stage = stageAwaitingFirst
	return nil
}

// proceed acknowledges the first warning and arms the typed confirmation.
func (c *clearConfirmation) proceed() error {
	if c.stage != stageAwaitingFirst {
		c.stage = stageIdle
		return fmt.Errorf("%w: request the clear first", ErrConfirmationSequence)
	}
	c.stage = stageAwaitingTyped
	return nil
}

// confirm completes the sequence when typed matches the required phrase
// exactly. The sequence always returns to idle, whether it succeeds or aborts.
func (c *clearConfirmation) confirm(typed string) error {
	stage := c.stage
	c.stage = stageIdle

	if stage != stageAwaitingTyped {
		return fmt.Errorf("%w: acknowledge the warning first", ErrConfirmationSequence)
	}
	if typed != c.phrase {
		return fmt.Errorf("%w: type %q to confirm", ErrConfirmationMismatch, c.phrase)
	}
	return nil
}
