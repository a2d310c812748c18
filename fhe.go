/*
Package fhe provides the modular-arithmetic core of an RNS-based lattice
cryptography library: polynomial rings Z_Q[X]/(X^N+1) with a residue number
system representation, number-theoretic transforms, and exact rational
rescaling between modulus chains.
*/
package fhe

// Version is the current version of the library.
const Version = "0.1.0"
