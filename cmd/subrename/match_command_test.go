package main

import "testing"

func TestMatchCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "match",
			args: []string{"match", "Foo.S04E01.mkv", "foo.s04e01.srt"},
			want: []string{"S04E01", "[OK] match (exact policy)"},
		},
		{
			name: "padding differs",
			args: []string{"match", "foo.s4e1.mkv", "foo.s04e01.srt"},
			want: []string{"S4E1", "[WARN] no match"},
		},
		{
			name: "numeric policy",
			args: []string{"match", "--policy", "numeric", "foo.s4e1.mkv", "foo.s04e01.srt"},
			want: []string{"[OK] match (numeric policy)"},
		},
		{
			name: "no signature",
			args: []string{"match", "readme.txt", "foo.s01e01.srt"},
			want: []string{"readme.txt: no signature", "no match"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := runCLI(t, tt.args, env.configPath)
			if err != nil {
				t.Fatalf("match: %v", err)
			}
			for _, want := range tt.want {
				requireContains(t, out, want)
			}
		})
	}
}
