package automatic

import (
	"bufio"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"os"
	"strings"

	"github.com/cespare/xxhash"
	"lukechampine.com/frand"

	"github.com/domino14/cribbage/cards"
)

type Seed = [cards.SeedSize]byte

// GenerateSeeds creates n random seeds for reproducible match runs.
func GenerateSeeds(n int) []Seed {
	seeds := make([]Seed, n)
	for i := range seeds {
		frand.Read(seeds[i][:])
	}
	return seeds
}

// DeriveSeed computes the seed of match id from a master seed, so a whole
// evaluation can be replayed from a single seed.
func DeriveSeed(master Seed, id int) Seed {
	var buf [cards.SeedSize + 9]byte
	copy(buf[:], master[:])
	binary.LittleEndian.PutUint64(buf[cards.SeedSize:], uint64(id))
	var out Seed
	for k := 0; k < cards.SeedSize/8; k++ {
		buf[len(buf)-1] = byte(k)
		binary.LittleEndian.PutUint64(out[8*k:], xxhash.Sum64(buf[:]))
	}
	return out
}

// ParseSeed decodes a base64 seed. URL-safe and standard encodings are
// both accepted.
func ParseSeed(s string) (Seed, error) {
	var seed Seed
	s = strings.TrimRight(strings.TrimSpace(s), "=")
	decoded, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		decoded, err = base64.RawStdEncoding.DecodeString(s)
		if err != nil {
			return seed, err
		}
	}
	if len(decoded) != cards.SeedSize {
		return seed, fmt.Errorf("got %d bytes, expected %d", len(decoded), cards.SeedSize)
	}
	copy(seed[:], decoded)
	return seed, nil
}

// FormatSeed is the inverse of ParseSeed.
func FormatSeed(seed Seed) string {
	return base64.RawURLEncoding.EncodeToString(seed[:])
}

// SaveSeeds writes seeds to a file, one per line.
func SaveSeeds(seeds []Seed, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create seed file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	_, err = writer.WriteString("# cribbage match seeds (base64 URL-safe, 32 bytes each)\n")
	if err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, seed := range seeds {
		if _, err = writer.WriteString(FormatSeed(seed) + "\n"); err != nil {
			return fmt.Errorf("failed to write seed %d: %w", i, err)
		}
	}
	return writer.Flush()
}

// LoadSeeds reads seeds written by SaveSeeds. Blank lines and lines
// starting with # are skipped.
func LoadSeeds(path string) ([]Seed, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer file.Close()

	var seeds []Seed
	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		seed, err := ParseSeed(line)
		if err != nil {
			return nil, fmt.Errorf("bad seed at line %d: %w", lineNum, err)
		}
		seeds = append(seeds, seed)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading seed file: %w", err)
	}
	return seeds, nil
}
