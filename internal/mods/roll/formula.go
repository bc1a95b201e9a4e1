// /internal/mods/roll/formula.go
package roll

import (
	"fmt"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
)

const (
	maxDice  = 100
	maxSides = 1000
)

var (
	tokenPattern = regexp.MustCompile(`(?i)(\d*d\d+|\d+|[+\-*/])`)
	dicePattern  = regexp.MustCompile(`(?i)^(\d*)d(\d+)$`)
	operators    = map[string]bool{"+": true, "-": true, "*": true, "/": true}
)

type term struct {
	value int
	desc  string
	op    string
}

// evalFormula resolves a dice formula like "2d6+3" or "d20*2-1" into a
// total and a per-term breakdown. Multiplication and division bind
// tighter than addition and subtraction.
func evalFormula(formula string) (int, string, error) {
	formula = strings.ReplaceAll(formula, " ", "")
	tokens := tokenPattern.FindAllString(formula, -1)
	if len(tokens) == 0 {
		return 0, "", fmt.Errorf("nothing rollable in `%s`", formula)
	}

	terms := make([]term, 0, len(tokens))
	op := "+"
	for _, token := range tokens {
		if operators[token] {
			op = token
			continue
		}
		value, desc, err := evalToken(token)
		if err != nil {
			return 0, "", err
		}
		terms = append(terms, term{value: value, desc: desc, op: op})
		op = "+"
	}
	if len(terms) == 0 {
		return 0, "", fmt.Errorf("nothing rollable in `%s`", formula)
	}

	// Fold * and / into the preceding term first.
	folded := []term{terms[0]}
	for _, t := range terms[1:] {
		switch t.op {
		case "*":
			last := &folded[len(folded)-1]
			last.value *= t.value
			last.desc = fmt.Sprintf("%s * %s", last.desc, t.desc)
		case "/":
			if t.value == 0 {
				return 0, "", fmt.Errorf("division by zero, even dice have limits")
			}
			last := &folded[len(folded)-1]
			last.value /= t.value
			last.desc = fmt.Sprintf("%s / %s", last.desc, t.desc)
		default:
			folded = append(folded, t)
		}
	}

	total := 0
	parts := make([]string, 0, len(folded))
	for i, t := range folded {
		if t.op == "-" {
			total -= t.value
		} else {
			total += t.value
		}
		switch {
		case i == 0 && t.op == "-":
			parts = append(parts, "- "+t.desc)
		case i == 0:
			parts = append(parts, t.desc)
		default:
			parts = append(parts, t.op+" "+t.desc)
		}
	}
	return total, strings.Join(parts, " "), nil
}

// evalToken resolves a single dice group or plain number.
func evalToken(token string) (int, string, error) {
	if m := dicePattern.FindStringSubmatch(token); m != nil {
		count := 1
		if m[1] != "" {
			count, _ = strconv.Atoi(m[1])
		}
		sides, _ := strconv.Atoi(m[2])
		if count < 1 || sides < 2 {
			return 0, "", fmt.Errorf("`%s` is not a throwable die", token)
		}
		if count > maxDice || sides > maxSides {
			return 0, "", fmt.Errorf("`%s` is too big, max %d dice with %d sides", token, maxDice, maxSides)
		}
		sum := 0
		rolls := make([]string, count)
		for i := range rolls {
			r := rand.Intn(sides) + 1
			sum += r
			rolls[i] = strconv.Itoa(r)
		}
		return sum, fmt.Sprintf("`%s` [%s]", strings.ToLower(token), strings.Join(rolls, ", ")), nil
	}

	n, err := strconv.Atoi(token)
	if err != nil {
		return 0, "", fmt.Errorf("cannot make sense of `%s`", token)
	}
	return n, fmt.Sprintf("`%d`", n), nil
}
