package langstats

// CalculateIoC returns the index of coincidence of text, the probability that
// two runes drawn without replacement are equal. Texts of fewer than two
// runes have an IoC of 0.
func CalculateIoC(text string) float64 {
	counts := make(map[rune]int)
	n := 0
	for _, r := range text {
		counts[r]++
		n++
	}
	if n <= 1 {
		return 0
	}
	sum := 0
	for _, c := range counts {
		sum += c * (c - 1)
	}
	return float64(sum) / float64(n*(n-1))
}
