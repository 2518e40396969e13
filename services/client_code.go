package services

import (
	"fmt"
	"strings"

	"github.com/camden-git/clientsysbackend/repository"
)

const codeFillChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// CodeGenerator derives the unique AAA### code assigned to every client at
// creation time. It holds the client repository so it can probe for codes
// that are already taken.
type CodeGenerator struct {
	clientRepo repository.ClientRepository
}

func NewCodeGenerator(clientRepo repository.ClientRepository) *CodeGenerator {
	return &CodeGenerator{clientRepo: clientRepo}
}

// DeriveAlphaPart computes the three-letter prefix from a client's display
// name using the word-initials scheme:
//   - 3+ words: first letter of each of the first three words
//   - 2 words: first letter of word one + first two letters of word two
//   - 1 word: first three letters of the word
//   - empty name: literal "AAA"
//
// Results shorter than three letters are right-padded with sequential fill
// letters (position 1 gets 'A', position 2 gets 'B', and so on).
func DeriveAlphaPart(name string) string {
	words := strings.Fields(name)

	var alpha string
	switch {
	case len(words) >= 3:
		var b strings.Builder
		for _, word := range words[:3] {
			b.WriteString(firstLetters(word, 1))
		}
		alpha = b.String()
	case len(words) == 2:
		alpha = firstLetters(words[0], 1) + firstLetters(words[1], 2)
	case len(words) == 1:
		alpha = firstLetters(words[0], 3)
	default:
		alpha = "AAA"
	}

	alpha = strings.ToUpper(alpha)

	// pad short prefixes with the fill alphabet, indexed by string
	// position: position 1 gets 'A', position 2 gets 'B'
	for len(alpha) < 3 {
		alpha += string(codeFillChars[len(alpha)-1])
	}

	return alpha
}

func firstLetters(word string, n int) string {
	runes := []rune(word)
	if len(runes) > n {
		runes = runes[:n]
	}
	return string(runes)
}

// Generate returns the first unused code for the given client name: the
// derived alpha part followed by a zero-padded numeric suffix, probed in
// increasing order starting at 001.
//
// The probe is a check-then-act against the store; two concurrent creations
// with colliding prefixes can race, and the unique index on clients.code is
// the final backstop. The loser surfaces the store's uniqueness violation
// rather than retrying.
func (g *CodeGenerator) Generate(name string) (string, error) {
	alpha := DeriveAlphaPart(name)

	for suffix := 1; ; suffix++ {
		code := fmt.Sprintf("%s%03d", alpha, suffix)
		taken, err := g.clientRepo.CodeExists(code)
		if err != nil {
			return "", fmt.Errorf("failed to probe code %s: %w", code, err)
		}
		if !taken {
			return code, nil
		}
	}
}
