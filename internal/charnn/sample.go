//    HipparchiaNLPNotebook
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package charnn

import (
	"fmt"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/gen"
	"io"
	"math"
	"math/rand"
	"strings"
)

// Sample - reweight probs by temperature and draw one index; a temperature <= 0 means argmax
func Sample(probs []float64, temperature float64, rng *rand.Rand) int {
	if temperature <= 0 {
		return gen.ArgMax(probs)
	}

	w := make([]float64, len(probs))
	mx := math.Inf(-1)
	for i, p := range probs {
		w[i] = math.Log(p) / temperature
		if w[i] > mx {
			mx = w[i]
		}
	}
	if math.IsInf(mx, -1) {
		return gen.ArgMax(probs)
	}

	sum := float64(0)
	for i := range w {
		w[i] = math.Exp(w[i] - mx)
		sum += w[i]
	}

	r := rng.Float64() * sum
	for i, v := range w {
		r -= v
		if r < 0 {
			return i
		}
	}
	return len(w) - 1
}

// Generate - feed the model its own output n times, starting from seed
func Generate(model *LSTM, alph Alphabet, seed string, n int, temperature float64, rng *rand.Rand) string {
	window := alph.Encode(seed)
	maxlen := len(window)
	if maxlen == 0 {
		window = []int{rng.Intn(alph.Len())}
		maxlen = 1
	}

	var sb strings.Builder
	for i := 0; i < n; i++ {
		next := Sample(model.Forward(window), temperature, rng)
		sb.WriteRune(alph.Chars[next])
		window = append(window, next)
		if len(window) > maxlen {
			window = window[len(window)-maxlen:]
		}
	}
	return sb.String()
}

// SampleCallback - at the end of each epoch print a generation per diversity from a random window of the text
func SampleCallback(w io.Writer, model *LSTM, alph Alphabet, text string, cfg Config, rng *rand.Rand) Callback {
	const (
		HEAD = "\n----- Generating text after epoch: %d\n"
		DIV  = "----- diversity: %.1f\n"
		SEED = "----- Generating with seed: \"%s\"\n"
	)
	rr := []rune(text)
	return func(epoch int, _ float64) error {
		if len(rr) <= cfg.MaxLen {
			return ErrCorpusTooShort
		}
		start := rng.Intn(len(rr) - cfg.MaxLen)
		seed := string(rr[start : start+cfg.MaxLen])

		_, _ = fmt.Fprintf(w, HEAD, epoch)
		for _, d := range cfg.Diversities {
			_, _ = fmt.Fprintf(w, DIV, d)
			_, _ = fmt.Fprintf(w, SEED, seed)
			_, _ = fmt.Fprintln(w, seed+Generate(model, alph, seed, cfg.GenerateLen, d, rng))
		}
		return nil
	}
}
