package dockerfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Instruction
	}{
		{
			name: "from with tag",
			line: "FROM node:18",
			want: Instruction{Kind: KindFrom, Raw: "FROM node:18", Image: "node:18"},
		},
		{
			name: "from with stage",
			line: "FROM golang:1.21 AS builder",
			want: Instruction{Kind: KindFrom, Raw: "FROM golang:1.21 AS builder", Image: "golang:1.21", Stage: "builder"},
		},
		{
			name: "expose multiple ports with leading whitespace",
			line: "  EXPOSE 80 443",
			want: Instruction{Kind: KindExpose, Raw: "EXPOSE 80 443", Ports: []int{80, 443}},
		},
		{
			name: "expose with protocol suffix",
			line: "EXPOSE 8080/tcp",
			want: Instruction{Kind: KindExpose, Raw: "EXPOSE 8080/tcp", Ports: []int{8080}},
		},
		{
			name: "shell form cmd",
			line: "CMD npm start",
			want: Instruction{Kind: KindCmd, Raw: "CMD npm start", Args: "npm start"},
		},
		{
			name: "exec form cmd",
			line: `CMD ["npm", "start"]`,
			want: Instruction{Kind: KindCmd, Raw: `CMD ["npm", "start"]`, Args: `["npm", "start"]`, ExecForm: true},
		},
		{
			name: "shell form entrypoint",
			line: "ENTRYPOINT ./app --serve",
			want: Instruction{Kind: KindEntrypoint, Raw: "ENTRYPOINT ./app --serve", Args: "./app --serve"},
		},
		{
			name: "add counts as copy",
			line: "ADD src /app/src",
			want: Instruction{Kind: KindCopy, Raw: "ADD src /app/src", Args: "src /app/src"},
		},
		{
			name: "run",
			line: "RUN echo hello",
			want: Instruction{Kind: KindRun, Raw: "RUN echo hello", Args: "echo hello"},
		},
		{
			name: "workdir",
			line: "WORKDIR /app",
			want: Instruction{Kind: KindWorkdir, Raw: "WORKDIR /app", Args: "/app"},
		},
		{
			name: "comment is other",
			line: "# just a comment",
			want: Instruction{Kind: KindOther, Raw: "# just a comment"},
		},
		{
			name: "empty line is other",
			line: "   ",
			want: Instruction{Kind: KindOther, Raw: ""},
		},
		{
			name: "unknown instruction is other",
			line: "HEALTHCHECK CMD curl localhost",
			want: Instruction{Kind: KindOther, Raw: "HEALTHCHECK CMD curl localhost"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.line))
		})
	}
}

func TestKeywordDetection(t *testing.T) {
	tests := []struct {
		name       string
		line       string
		pkgManager bool
		buildTool  bool
	}{
		{"apt-get install", "RUN apt-get update && apt-get install -y curl", true, false},
		{"pip install", "RUN pip install -r requirements.txt", true, false},
		{"npm in cmd", "CMD npm start", true, false},
		{"go build", "RUN go build -o app .", false, true},
		{"cargo build", "RUN cargo build --release", false, true},
		{"plain echo", "RUN echo hello", false, false},
		// Substring matching is intentionally approximate: a keyword inside
		// a comment still counts as a hit.
		{"keyword in comment", "# installed via yarn", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.pkgManager, HasPackageManagerKeyword(tt.line), "package manager")
			assert.Equal(t, tt.buildTool, HasBuildToolKeyword(tt.line), "build tool")
		})
	}
}
