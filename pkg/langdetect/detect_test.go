package langdetect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/lintspec/pkg/langdetect"
)

func TestIsSolidity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		path    string
		content string
		want    bool
	}{
		{name: "sol extension", path: "src/Token.sol", want: true},
		{name: "upper case extension", path: "Token.SOL", want: true},
		{name: "pragma without extension", path: "Token", content: "pragma solidity ^0.8.0;\ncontract T {}", want: true},
		{name: "license and contract", path: "Token.txt.bak",
			content: "// SPDX-License-Identifier: MIT\ncontract T is Base {\n}", want: true},
		{name: "contract with functions", path: "snippet",
			content: "contract T {\n    function f() public {}\n}", want: true},
		{name: "go source", path: "main.go", content: "package main\npragma solidity", want: false},
		{name: "plain text", path: "notes", content: "a contract is an agreement", want: false},
		{name: "empty", path: "empty", content: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, langdetect.IsSolidity(tt.path, []byte(tt.content)))
		})
	}
}

func TestDetect(t *testing.T) {
	t.Parallel()

	assert.Equal(t, langdetect.LangSolidity, langdetect.Detect("A.sol", nil))
	assert.Equal(t, "go", langdetect.Detect("main.go", []byte("package main")))
	assert.Equal(t, "text", langdetect.Detect("README", []byte("hello")))
}

func TestIsVendored(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want bool
	}{
		{path: "node_modules/@openzeppelin/contracts/token/ERC20.sol", want: true},
		{path: "lib/forge-std/src/Test.sol", want: true},
		{path: "lib", want: true},
		{path: "packages/core/lib/solmate/src/ERC20.sol", want: true},
		{path: "src/Token.sol", want: false},
		{path: "src/library/Math.sol", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, langdetect.IsVendored(tt.path))
		})
	}
}
