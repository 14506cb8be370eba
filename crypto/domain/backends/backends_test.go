package backends

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestBackends(t *testing.T) {
	c := qt.New(t)
	c.Assert(Backends(), qt.DeepEquals, []string{"bls12381", "bn254", "ring256", "rsa2048", "rsa3072", "rsa4096"})
	for _, name := range Backends() {
		b, err := New(name)
		c.Assert(err, qt.IsNil)
		c.Assert(b.Type(), qt.Equals, name)
		c.Assert(IsValid(name), qt.IsTrue)
	}
	c.Assert(IsValid(Default), qt.IsTrue)

	for _, name := range []string{"", "BLS12381", "rsa1024", "rsa", "secp256k1"} {
		_, err := New(name)
		c.Assert(err, qt.ErrorMatches, "unsupported backend type: .*")
		c.Assert(IsValid(name), qt.IsFalse)
	}
}
