package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypePath(t *testing.T) {
	p1 := NewTypePath("example.com/p")
	assert.Equal(t, "example.com/p", p1.String())

	p2 := p1.Field("Person")
	assert.Equal(t, "example.com/p.Person", p2.String())

	// Field does not mutate the receiver
	p3 := p1.Field("Build").Field("local")
	assert.Equal(t, "example.com/p.Build.local", p3.String())
	assert.Equal(t, "example.com/p.Person", p2.String())

	assert.Equal(t, "Person", NewTypePath("").Field("Person").String())
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name      string
		pkgPath   string
		enclosing []string
		typeName  string
		expected  string
	}{
		{"package level", "example.com/p", nil, "Person", "example.com/p.Person"},
		{"in function", "example.com/p", []string{"Build"}, "local", "example.com/p.Build.local"},
		{"in method literal", "example.com/p", []string{"(*Server).Run", "func"}, "state", "example.com/p.(*Server).Run.func.state"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DisplayName(tt.pkgPath, tt.enclosing, tt.typeName))
		})
	}
}
