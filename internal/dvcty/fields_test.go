package dvcty

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

type sampleInput struct {
	QID    string   `arg:"qid"`
	VRange []string `arg:"vrange"`
	Blank  bool     `arg:"blank,optional"`
	AtMost int      `arg:"atmost,optional"`
	hidden string
}

func TestFields(t *testing.T) {
	fields, err := Fields(reflect.TypeOf(&sampleInput{}))
	require.NoError(t, err)

	want := []Field{
		{Name: "qid", Index: 0, Type: cty.String},
		{Name: "vrange", Index: 1, Type: cty.List(cty.String)},
		{Name: "blank", Index: 2, Optional: true, Type: cty.Bool},
		{Name: "atmost", Index: 3, Optional: true, Type: cty.Number},
	}
	require.Len(t, fields, len(want))
	for i := range want {
		assert.Equal(t, want[i].Name, fields[i].Name)
		assert.Equal(t, want[i].Index, fields[i].Index)
		assert.Equal(t, want[i].Optional, fields[i].Optional)
		assert.True(t, want[i].Type.Equals(fields[i].Type), "field %s type %s", want[i].Name, fields[i].Type.FriendlyName())
	}
}

func TestFields_Errors(t *testing.T) {
	tests := []struct {
		name    string
		typ     reflect.Type
		wantErr string
	}{
		{name: "nil", typ: nil, wantErr: "input type is nil"},
		{name: "not a struct", typ: reflect.TypeOf(0), wantErr: "is not a struct"},
		{
			name: "untagged field",
			typ: reflect.TypeOf(struct {
				QID string
			}{}),
			wantErr: `field QID has no "arg" tag`,
		},
		{
			name: "duplicate name",
			typ: reflect.TypeOf(struct {
				A string `arg:"qid"`
				B string `arg:"qid"`
			}{}),
			wantErr: `share argument name "qid"`,
		},
		{
			name: "unknown option",
			typ: reflect.TypeOf(struct {
				A string `arg:"qid,required"`
			}{}),
			wantErr: `unknown tag option "required"`,
		},
		{
			name: "no cty type",
			typ: reflect.TypeOf(struct {
				A chan int `arg:"qid"`
			}{}),
			wantErr: "cannot imply cty type",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Fields(tc.typ)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}
