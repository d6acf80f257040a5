/*
Package gsw is a library implementing the GSW (Gentry-Sahai-Waters) fully homomorphic
encryption scheme over LWE ciphertexts. The library features:

  - A pure Go implementation enabling code-simplicity and easy builds.
  - Single-bit encryption with homomorphic addition (XOR), multiplication (AND) and NAND.
  - Bootstrapping by homomorphic evaluation of the linear part of the decryption.
  - Deterministic, seedable randomness for reproducible key and ciphertext generation.

The library is a reference implementation aimed at experimenting with the gadget
decomposition algebra and the noise behaviour of matrix-GSW; the shipped parameter
sets are a test-vector contract and are not claimed secure.
*/
package gsw
