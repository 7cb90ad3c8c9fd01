package yamlutil

import (
	"flag"
	"testing"
)

func TestSetFlagsFromYamlFillsUnsetOnly(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	strict := fs.Bool("strict-trailer", false, "")
	listen := fs.String("listen", "", "")
	fs.Parse([]string{"-listen=127.0.0.1"})

	yamlDoc := []byte("STRICT_TRAILER: \"true\"\nLISTEN: \"10.0.0.1\"\n")
	if err := SetFlagsFromYaml(fs, yamlDoc); err != nil {
		t.Fatalf("SetFlagsFromYaml: %v", err)
	}

	if !*strict {
		t.Errorf("strict-trailer not set from yaml")
	}
	if *listen != "127.0.0.1" {
		t.Errorf("listen overwritten by yaml: got %q, want %q", *listen, "127.0.0.1")
	}
}

func TestSetFlagsFromYamlInvalidValue(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.Bool("strict-trailer", false, "")

	yamlDoc := []byte("STRICT_TRAILER: \"not-a-bool\"\n")
	if err := SetFlagsFromYaml(fs, yamlDoc); err == nil {
		t.Fatal("expected error for invalid bool value")
	}
}
