package ring

import (
	"fmt"
	"math/big"
	"math/bits"
)

// IsPrime applies the Baillie-PSW test, which is 100% accurate for numbers below 2^64.
func IsPrime(x uint64) bool {
	return new(big.Int).SetUint64(x).ProbablyPrime(0)
}

// GenerateNTTPrimes generates n NthRoot NTT friendly primes given logQ = size of the primes.
// It will return all the appropriate primes, up to the number of n, with the
// best available deviation from the base power of 2 for the given n.
func GenerateNTTPrimes(logQ, NthRoot, n int) (primes []uint64, err error) {

	if logQ < 2 || logQ > MaxModulusBits {
		return nil, fmt.Errorf("%w: logQ must be between 2 and %d", ErrParameter, MaxModulusBits)
	}

	if NthRoot < 2 || NthRoot&(NthRoot-1) != 0 {
		return nil, fmt.Errorf("%w: NthRoot must be a power of two greater than one", ErrParameter)
	}

	var nextPrime, previousPrime uint64
	var checkForNextPrime, checkForPreviousPrime bool

	primes = []uint64{}

	Qpow2 := uint64(1 << logQ)

	nextPrime = Qpow2 + 1
	previousPrime = Qpow2 + 1

	checkForNextPrime = true
	checkForPreviousPrime = true

	for {

		if !(checkForNextPrime || checkForPreviousPrime) {
			return nil, fmt.Errorf("%w: cannot generate %d NTT primes for logQ=%d and NthRoot=%d", ErrParameter, n, logQ, NthRoot)
		}

		if checkForNextPrime {

			if nextPrime > 0xffffffffffffffff-uint64(NthRoot) || bits.Len64(nextPrime+uint64(NthRoot)) > MaxModulusBits {

				checkForNextPrime = false

			} else {

				nextPrime += uint64(NthRoot)

				if IsPrime(nextPrime) {

					primes = append(primes, nextPrime)

					if len(primes) == n {
						return primes, nil
					}
				}
			}
		}

		if checkForPreviousPrime {

			if previousPrime < uint64(NthRoot) {

				checkForPreviousPrime = false

			} else {

				previousPrime -= uint64(NthRoot)

				if IsPrime(previousPrime) {

					primes = append(primes, previousPrime)

					if len(primes) == n {
						return primes, nil
					}
				}
			}
		}
	}
}

// NextNTTPrime returns the next NthRoot NTT prime after q.
// The input q must be itself an NTT prime for the given NthRoot.
func NextNTTPrime(q uint64, NthRoot int) (qNext uint64, err error) {

	qNext = q + uint64(NthRoot)

	for !IsPrime(qNext) {

		qNext += uint64(NthRoot)

		if bits.Len64(qNext) > MaxModulusBits {
			return 0, fmt.Errorf("%w: next NTT prime exceeds the maximum bit-size of %d bits", ErrParameter, MaxModulusBits)
		}
	}

	return qNext, nil
}

// PreviousNTTPrime returns the previous NthRoot NTT prime before q.
// The input q must be itself an NTT prime for the given NthRoot.
func PreviousNTTPrime(q uint64, NthRoot int) (qPrev uint64, err error) {

	if q < uint64(NthRoot) {
		return 0, fmt.Errorf("%w: previous NTT prime is smaller than NthRoot", ErrParameter)
	}

	qPrev = q - uint64(NthRoot)

	for !IsPrime(qPrev) {

		if qPrev < uint64(NthRoot) {
			return 0, fmt.Errorf("%w: previous NTT prime is smaller than NthRoot", ErrParameter)
		}

		qPrev -= uint64(NthRoot)
	}

	return qPrev, nil
}
