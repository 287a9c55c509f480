package dice

import "go.uber.org/zap"

// Roller wraps a Source and logger; every roll is logged at debug level.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller that rolls with src and logs each roll to logger.
//
// Precondition: src and logger must be non-nil.
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	return &Roller{src: src, logger: logger}
}

// Roll evaluates expr and logs the result.
func (r *Roller) Roll(expr Expression) RollResult {
	result := Roll(expr, r.src)
	r.logger.Debug("dice roll",
		zap.String("expression", result.Expression),
		zap.Ints("dice", result.Dice),
		zap.Int("modifier", result.Modifier),
		zap.Int("total", result.Total()),
		zap.Any("refs", result.Refs),
	)
	return result
}

// RollFormula resolves formula against a sheet's roll data, rolls it and
// logs the result.
//
// Postcondition: Returns a RollResult or a parse/resolve error.
func (r *Roller) RollFormula(formula string, data Data) (RollResult, error) {
	e, err := Resolve(formula, data)
	if err != nil {
		return RollResult{}, err
	}
	return r.Roll(e), nil
}
