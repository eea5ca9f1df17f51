package ocr

import (
	"regexp"
	"strconv"
	"strings"
)

// numberPattern matches candidate numeric tokens in OCR output: an optional
// sign, digits, and any number of separator+digit groups. A bare sign or a
// trailing separator without digits never matches.
var numberPattern = regexp.MustCompile(`[-+]?[0-9]+(?:[.,][0-9]+)*`)

// ExtractNumbers scans raw OCR text and returns every numeric value found,
// in order of first appearance. Receipts come in both 1,234.56 and 1.234,56
// styles, so separators are disambiguated per token:
//
//   - more than one '.' or more than one ',' means every separator is a
//     thousands separator and is removed
//   - one of each means the later one is the decimal point
//   - a remaining ',' is normalized to '.'
//
// Tokens that still fail to parse are dropped silently; OCR noise is
// expected and never an error. The result may be empty.
func ExtractNumbers(text string) []float64 {
	tokens := numberPattern.FindAllString(text, -1)

	numbers := make([]float64, 0, len(tokens))
	for _, token := range tokens {
		t := strings.ReplaceAll(token, " ", "")

		if strings.Count(t, ".") > 1 || strings.Count(t, ",") > 1 {
			t = strings.ReplaceAll(t, ".", "")
			t = strings.ReplaceAll(t, ",", "")
		}

		if strings.Contains(t, ".") && strings.Contains(t, ",") {
			// The later separator is the decimal point.
			if strings.LastIndex(t, ".") > strings.LastIndex(t, ",") {
				t = strings.ReplaceAll(t, ",", "")
			} else {
				t = strings.ReplaceAll(t, ".", "")
				t = strings.ReplaceAll(t, ",", ".")
			}
		}

		t = strings.ReplaceAll(t, ",", ".")

		n, err := strconv.ParseFloat(t, 64)
		if err != nil {
			continue
		}
		numbers = append(numbers, n)
	}

	return numbers
}

// SumNumbers adds up the extracted values of a single receipt.
func SumNumbers(numbers []float64) float64 {
	var total float64
	for _, n := range numbers {
		total += n
	}
	return total
}
