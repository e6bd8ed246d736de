package analyze_test

import (
	"go/parser"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"observable-generator/internal/analyze"
)

func TestBuildConstraint(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		src      string
		expected string
	}{
		{
			name:     "unconstrained",
			fileName: "person.go",
			src:      "package p\n",
			expected: "",
		},
		{
			name:     "go:build line",
			fileName: "person.go",
			src:      "//go:build linux && !cgo\n\npackage p\n",
			expected: "//go:build linux && !cgo",
		},
		{
			name:     "after a copyright comment",
			fileName: "person.go",
			src:      "// Copyright 2026 Example.\n\n//go:build debug\n\npackage p\n",
			expected: "//go:build debug",
		},
		{
			name:     "go:build in doc comment is ignored",
			fileName: "person.go",
			src:      "package p\n\n//go:build ignore\ntype T struct{}\n",
			expected: "",
		},
		{
			name:     "goos suffix",
			fileName: "server_windows.go",
			src:      "package p\n",
			expected: "//go:build windows",
		},
		{
			name:     "goarch suffix",
			fileName: "server_arm64.go",
			src:      "package p\n",
			expected: "//go:build arm64",
		},
		{
			name:     "goos and goarch suffix",
			fileName: "server_linux_amd64.go",
			src:      "package p\n",
			expected: "//go:build linux && amd64",
		},
		{
			name:     "test file suffix",
			fileName: "server_darwin_test.go",
			src:      "package p\n",
			expected: "//go:build darwin",
		},
		{
			name:     "arch before os counts only the os",
			fileName: "server_amd64_linux.go",
			src:      "package p\n",
			expected: "//go:build linux",
		},
		{
			name:     "unknown segments",
			fileName: "http_server.go",
			src:      "package p\n",
			expected: "",
		},
		{
			name:     "bare os name",
			fileName: "linux.go",
			src:      "package p\n",
			expected: "",
		},
		{
			name:     "line and suffix combined",
			fileName: "/src/p/server_linux.go",
			src:      "//go:build amd64 || arm64\n\npackage p\n",
			expected: "//go:build (amd64 || arm64) && linux",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := parser.ParseFile(token.NewFileSet(), tt.fileName, tt.src, parser.ParseComments)
			require.NoError(t, err)

			assert.Equal(t, tt.expected, analyze.BuildConstraint(f, tt.fileName))
		})
	}
}
