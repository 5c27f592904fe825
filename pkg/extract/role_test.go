package extract_test

import (
	"testing"

	"github.com/gnames/gntax/pkg/extract"
	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    extract.Role
		wantErr bool
	}{
		{name: "name", input: "name", want: extract.Name()},
		{name: "rank", input: "rank", want: extract.Rank()},
		{name: "discard", input: "discard", want: extract.Discard()},
		{name: "info field", input: "info:habitat", want: extract.Info("habitat")},
		{name: "case and space", input: " Rank ", want: extract.Rank()},
		{name: "info without field", input: "info:", wantErr: true},
		{name: "unknown", input: "species", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			role, err := extract.ParseRole(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, role)
		})
	}
}

func TestParseRolesOrder(t *testing.T) {
	roles, err := extract.ParseRoles([]string{"name", "rank", "info:n"})
	assert.NoError(t, err)
	assert.Equal(t, []extract.Role{
		extract.Name(), extract.Rank(), extract.Info("n"),
	}, roles)

	_, err = extract.ParseRoles([]string{"name", "oops"})
	assert.Error(t, err)
}

func TestRoleString(t *testing.T) {
	assert.Equal(t, "name", extract.Name().String())
	assert.Equal(t, "info:habitat", extract.Info("habitat").String())
	assert.Equal(t, "discard", extract.Discard().String())
}
