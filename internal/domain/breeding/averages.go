package breeding

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// FoldWeaning incorpora la camada del parto número n a los medios históricos.
//
// Con n <= 1 o sin medios previos, los medios son los de la propia camada.
// En otro caso es una media acumulada de n puntos a partir de los n-1 previos,
// redondeada a un decimal. La viabilidad es un porcentaje entero y vale 0
// cuando no hay nacidos vivos.
func FoldWeaning(n int, l Litter, prev *Averages) Averages {
	born := decimal.NewFromInt(int64(l.BornAlive))
	weaned := decimal.NewFromInt(int64(l.Weaned))

	if n <= 1 || prev == nil {
		return Averages{
			BornAlive: float64(l.BornAlive),
			Weaned:    float64(l.Weaned),
			Viability: viability(born, weaned),
		}
	}

	count := decimal.NewFromInt(int64(n))
	prior := decimal.NewFromInt(int64(n - 1))

	meanBorn := decimal.NewFromFloat(prev.BornAlive).Mul(prior).Add(born).Div(count).Round(1)
	meanWeaned := decimal.NewFromFloat(prev.Weaned).Mul(prior).Add(weaned).Div(count).Round(1)

	b, _ := meanBorn.Float64()
	w, _ := meanWeaned.Float64()
	return Averages{
		BornAlive: b,
		Weaned:    w,
		Viability: viability(meanBorn, meanWeaned),
	}
}

func viability(born, weaned decimal.Decimal) int {
	if !born.IsPositive() {
		return 0
	}
	return int(weaned.Mul(hundred).Div(born).Round(0).IntPart())
}
