package assemble

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/Rafiklab24/loyal-supplychain/internal/importer/model"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Result is the per-aggregate validation outcome. Errors block a live
// import; warnings never do.
type Result struct {
	IsValid  bool
	Errors   []string
	Warnings []string
}

type shipmentChecks struct {
	SN string `validate:"required"`
}

type contractChecks struct {
	ContractNo string `validate:"required"`
}

// ValidateShipment checks required fields and format invariants for one
// shipment aggregate.
func ValidateShipment(s *model.ParsedShipment) Result {
	var res Result
	res.Errors = append(res.Errors, structErrors(shipmentChecks{SN: s.SN})...)
	for _, field := range s.BadDates {
		res.Errors = append(res.Errors, fmt.Sprintf("malformed date in %s", field))
	}

	if len(s.Lines) == 0 {
		res.Warnings = append(res.Warnings, "no product lines")
	}
	if s.TotalValueUSD != nil && *s.TotalValueUSD < 0 {
		res.Warnings = append(res.Warnings, "negative total value")
	}
	if s.POL == "" {
		res.Warnings = append(res.Warnings, "missing port of loading")
	}
	if s.POD == "" {
		res.Warnings = append(res.Warnings, "missing port of discharge")
	}

	res.IsValid = len(res.Errors) == 0
	return res
}

// ValidateContract is the contract-aggregate counterpart.
func ValidateContract(c *model.ParsedContract) Result {
	var res Result
	res.Errors = append(res.Errors, structErrors(contractChecks{ContractNo: c.ContractNo})...)
	for _, field := range c.BadDates {
		res.Errors = append(res.Errors, fmt.Sprintf("malformed date in %s", field))
	}

	if len(c.Lines) == 0 {
		res.Warnings = append(res.Warnings, "no product lines")
	}
	if c.TotalValueUSD != nil && *c.TotalValueUSD < 0 {
		res.Warnings = append(res.Warnings, "negative total value")
	}
	if c.POL == "" {
		res.Warnings = append(res.Warnings, "missing port of loading")
	}

	res.IsValid = len(res.Errors) == 0
	return res
}

func structErrors(v any) []string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, fmt.Sprintf("missing required field: %s", fe.Field()))
	}
	return out
}
