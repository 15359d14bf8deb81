package scoring

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// ridgePenalty is applied to every coefficient except the intercept.
const ridgePenalty = 1.0

type standardScaler struct {
	Mean  Features
	Scale Features
}

// fitScaler computes per-feature population mean and standard deviation.
// A constant feature gets scale 1 so it standardizes to zero.
func fitScaler(rows []Features) standardScaler {
	var s standardScaler
	col := make([]float64, len(rows))
	for j := 0; j < featureCount; j++ {
		for i, r := range rows {
			col[i] = r[j]
		}
		mean, std := stat.PopMeanStdDev(col, nil)
		if std == 0 || math.IsNaN(std) {
			std = 1
		}
		s.Mean[j] = mean
		s.Scale[j] = std
	}
	return s
}

func (s standardScaler) transform(f Features) Features {
	var out Features
	for j := range f {
		scale := s.Scale[j]
		if scale == 0 {
			scale = 1
		}
		out[j] = (f[j] - s.Mean[j]) / scale
	}
	return out
}

type linearModel struct {
	Intercept float64
	Coef      Features
}

func (m linearModel) predict(x Features) float64 {
	y := m.Intercept
	for j := range x {
		y += m.Coef[j] * x[j]
	}
	return y
}

// fitRidge solves (XᵀX + λI)β = Xᵀy over a design matrix with a leading
// intercept column.
func fitRidge(x []Features, y []float64, lambda float64) (linearModel, error) {
	n := len(x)
	if n == 0 || n != len(y) {
		return linearModel{}, fmt.Errorf("fit ridge: %d rows, %d targets", n, len(y))
	}
	p := featureCount + 1

	design := mat.NewDense(n, p, nil)
	for i, row := range x {
		design.Set(i, 0, 1)
		for j, v := range row {
			design.Set(i, j+1, v)
		}
	}
	target := mat.NewVecDense(n, append([]float64(nil), y...))

	var gram mat.Dense
	gram.Mul(design.T(), design)
	for j := 1; j < p; j++ {
		gram.Set(j, j, gram.At(j, j)+lambda)
	}

	var rhs mat.VecDense
	rhs.MulVec(design.T(), target)

	var beta mat.VecDense
	if err := beta.SolveVec(&gram, &rhs); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return linearModel{}, fmt.Errorf("fit ridge: %w", err)
		}
	}

	m := linearModel{Intercept: beta.AtVec(0)}
	for j := 0; j < featureCount; j++ {
		m.Coef[j] = beta.AtVec(j + 1)
	}
	if math.IsNaN(m.Intercept) || math.IsInf(m.Intercept, 0) {
		return linearModel{}, errors.New("fit ridge: non-finite solution")
	}
	return m, nil
}
