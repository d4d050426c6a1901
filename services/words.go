package services

import "strings"

const takaSuffix = "Taka Only"

// AmountToWords converts a whole Taka amount to English words followed by
// "Taka Only". Negative amounts are not supported and yield "".
func AmountToWords(amount int) string {
	if amount < 0 {
		return ""
	}
	if amount == 0 {
		return "Zero " + takaSuffix
	}
	return convertToWords(amount) + " " + takaSuffix
}

func convertToWords(n int) string {
	var parts []string

	if n >= 1000000 {
		parts = append(parts, convertToWords(n/1000000)+" Million")
		n %= 1000000
	}

	if n >= 1000 {
		parts = append(parts, convertChunk(n/1000)+" Thousand")
		n %= 1000
	}

	if n > 0 {
		parts = append(parts, convertChunk(n))
	}

	return strings.TrimSpace(strings.Join(parts, " "))
}

// convertChunk converts 1..999.
func convertChunk(n int) string {
	var parts []string
	if n >= 100 {
		parts = append(parts, wordOnes[n/100]+" Hundred")
		n %= 100
	}
	if n > 0 {
		parts = append(parts, convertUnder100(n))
	}
	return strings.Join(parts, " ")
}

func convertUnder100(n int) string {
	if n < 20 {
		return wordOnes[n]
	}
	result := wordTens[n/10]
	if n%10 != 0 {
		result += " " + wordOnes[n%10]
	}
	return result
}

var wordOnes = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var wordTens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}
