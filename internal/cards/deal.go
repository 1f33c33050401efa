package cards

import (
	"encoding/binary"
	"math/rand/v2"
)

// Deal produces the four 13-card hands for hand number h of a game seeded
// by seed, using a Fisher-Yates shuffle of the 52-card deck driven by a
// ChaCha8 PRNG keyed on seed XOR h. The same (seed, h) pair always yields
// the same four hands, mirroring the teacher's NewDeck/Shuffle but
// replacing the unseeded math/rand source with an explicit, reproducible
// key so replays of the event log reconstruct identical deals.
func Deal(seed [32]byte, h int) [4]Cards {
	key := xorHandNumber(seed, h)
	src := rand.NewChaCha8(key)
	rng := rand.New(src)

	deck := make([]Card, 0, 52)
	for suit := Suit(0); suit < NumSuits; suit++ {
		for r := Rank(0); r < NumRanks; r++ {
			deck = append(deck, New(r, suit))
		}
	}

	for i := len(deck) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		deck[i], deck[j] = deck[j], deck[i]
	}

	var hands [4]Cards
	for seat := 0; seat < 4; seat++ {
		for i := 0; i < 13; i++ {
			hands[seat] = hands[seat].Add(deck[seat*13+i])
		}
	}
	return hands
}

// xorHandNumber XORs the big-endian encoding of h into the low bytes of
// seed, producing the per-hand PRNG key.
func xorHandNumber(seed [32]byte, h int) [32]byte {
	key := seed
	var hb [8]byte
	binary.BigEndian.PutUint64(hb[:], uint64(int64(h)))
	for i := range hb {
		key[len(key)-len(hb)+i] ^= hb[i]
	}
	return key
}
