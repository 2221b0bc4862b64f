package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"

	"github.com/holiman/uint256"
)

var errBadID = errors.New("bad token id")

// ParseID accepts decimal or 0x prefixed hex.
func ParseID(s string) (uint256.Int, error) {
	digits, base := s, 10
	if hasHexPrefix(s) {
		digits, base = s[2:], 16
	}
	b, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return uint256.Int{}, fmt.Errorf("%w: %q", errBadID, s)
	}
	if b.Sign() < 0 {
		return uint256.Int{}, fmt.Errorf("%w: %q is negative", errBadID, s)
	}
	id, overflow := uint256.FromBig(b)
	if overflow {
		return uint256.Int{}, fmt.Errorf("%w: %q exceeds 256 bits", errBadID, s)
	}
	return *id, nil
}

// ReadIDs reads one id per line. Blank lines and lines starting with # are
// skipped.
func ReadIDs(r io.Reader) ([]uint256.Int, error) {
	var ids []uint256.Int

	scanner := bufio.NewScanner(r)
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		id, err := ParseID(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		ids = append(ids, id)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

// readIDFile reads ids from path, or from stdin when path is "-".
func readIDFile(path string, stdin io.Reader) ([]uint256.Int, error) {
	if path == "-" {
		return ReadIDs(stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ids, err := ReadIDs(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ids, nil
}
