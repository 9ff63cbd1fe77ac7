// Command cucohost drives a uint64-keyed container through a batch of
// insert/contains/erase/rehash commands over a Stream and reports the
// counters each bulk operation returns.
package main

import (
	"fmt"
	"math/rand"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/trxcllnt/cuCollections"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "cucohost:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := flag.NewFlagSet("cucohost", flag.ContinueOnError)
	configPath := flags.String("config", "", "path to a YAML host config file")
	numKeys := flags.Int("keys", 100_000, "number of keys to insert for this run")
	seed := flags.Int64("rand-seed", 1, "seed for the demo's key generator")
	if err := flags.Parse(args); err != nil {
		return err
	}

	cfg := cuco.DefaultHostConfig()
	if *configPath != "" {
		loaded, err := cuco.LoadHostConfig(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	stream := cuco.NewStream()
	defer stream.Close()

	container, err := cfg.NewContainer(stream, *numKeys)
	if err != nil {
		return err
	}

	keys, values := randomKeys(*numKeys, *seed, cfg.EmptyKey, cfg.ErasedKey)

	inserted, err := container.Insert(stream, keys, values)
	if err != nil {
		return err
	}
	fmt.Printf("insert: %d/%d keys placed, capacity=%d, size=%d\n",
		inserted, len(keys), container.Capacity(), container.Size(stream))

	found := make([]bool, len(keys))
	if err := container.Contains(stream, keys, found); err != nil {
		return err
	}
	hits := 0
	for _, ok := range found {
		if ok {
			hits++
		}
	}
	fmt.Printf("contains: %d/%d keys present\n", hits, len(keys))

	if cfg.EraseEnabled {
		half := keys[:len(keys)/2]
		erased, err := container.Erase(stream, half)
		if err != nil {
			return err
		}
		fmt.Printf("erase: %d/%d keys removed, size=%d\n", erased, len(half), container.Size(stream))
	}

	if err := container.Rehash(stream, container.Capacity()*2); err != nil {
		return err
	}
	fmt.Printf("rehash: capacity=%d, size=%d\n", container.Capacity(), container.Size(stream))

	return nil
}

// randomKeys generates n distinct pseudo-random keys, none equal to
// the empty or erased sentinel, paired with arbitrary values.
func randomKeys(n int, seed int64, emptyKey, erasedKey uint64) (keys, values []uint64) {
	rng := rand.New(rand.NewSource(seed))
	seen := make(map[uint64]struct{}, n)
	keys = make([]uint64, 0, n)
	values = make([]uint64, 0, n)
	for len(keys) < n {
		k := rng.Uint64()
		if k == emptyKey || k == erasedKey {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
		values = append(values, rng.Uint64())
	}
	return keys, values
}
