package model

// Numerics holds the solver and schedule constants.
// They are not tunable by end users; DefaultSettings is the reference.
type Numerics struct {
	Epsilon float64

	IRRInitialGuess    float64
	IRRMaxIterations   int
	IRRTolerance       float64
	IRRLowerBound      float64 // bisection bracket
	IRRUpperBound      float64
	DerivativeFloor    float64 // |NPV'| below this is treated as a critical point
	DivergenceLimit    float64 // |r| above this is treated as divergence
	AcceptLowerBound   float64 // exclusive
	AcceptUpperBound   float64 // exclusive
	BisectionTolerance float64

	GridCoarseMin  float64
	GridCoarseMax  float64
	GridCoarseStep float64
	GridFineSpan   float64 // sweep is best ± span
	GridFineStep   float64
	GridTolerance  float64 // |NPV| for grid convergence
}

// Limits holds the structural caps and the plausibility bands used for warnings.
type Limits struct {
	MaxYears    int
	MaxLoanTerm int

	MaxLoanToCost   float64
	MaxLoanRate     float64
	MinDiscountRate float64
	MaxDiscountRate float64
	MinInflation    float64
	MaxInflation    float64
	MaxRentDecay    float64
	MaxPriceDecay   float64
	MaxVacancy      float64

	MaxIRRAbsolute float64
	MaxIRRRelative float64
	MinCapRate     float64
	MaxCapRate     float64
}

// Settings is the immutable configuration value handed to the engine.
type Settings struct {
	Numerics Numerics
	Limits   Limits
}

// DefaultSettings returns the reference configuration.
func DefaultSettings() Settings {
	return Settings{
		Numerics: Numerics{
			Epsilon: 1e-12,

			IRRInitialGuess:    0.1,
			IRRMaxIterations:   100,
			IRRTolerance:       1e-8,
			IRRLowerBound:      -0.99,
			IRRUpperBound:      10.0,
			DerivativeFloor:    1e-14,
			DivergenceLimit:    100,
			AcceptLowerBound:   -0.99,
			AcceptUpperBound:   100,
			BisectionTolerance: 1e-6,

			GridCoarseMin:  -0.95,
			GridCoarseMax:  5.0,
			GridCoarseStep: 0.01,
			GridFineSpan:   0.05,
			GridFineStep:   0.001,
			GridTolerance:  1e-6,
		},
		Limits: Limits{
			MaxYears:    50,
			MaxLoanTerm: 100,

			MaxLoanToCost:   1.2,
			MaxLoanRate:     0.10,
			MinDiscountRate: 0.01,
			MaxDiscountRate: 0.30,
			MinInflation:    -0.10,
			MaxInflation:    0.20,
			MaxRentDecay:    0.05,
			MaxPriceDecay:   0.05,
			MaxVacancy:      0.30,

			MaxIRRAbsolute: 10.0,
			MaxIRRRelative: 1.0,
			MinCapRate:     0.01,
			MaxCapRate:     0.20,
		},
	}
}
