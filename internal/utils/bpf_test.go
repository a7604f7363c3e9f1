package utils

import "testing"

func TestCompileBpfDefaultFilter(t *testing.T) {
	instructions, err := CompileBpf(DefaultFilter, 65536)
	if err != nil {
		t.Fatalf("CompileBpf failed: %v", err)
	}
	if len(instructions) == 0 {
		t.Error("Expected non-empty BPF program")
	}
}

func TestCompileBpfInvalidFilter(t *testing.T) {
	if _, err := CompileBpf("this is not bpf", 65536); err == nil {
		t.Error("Expected error for invalid filter expression")
	}
}

func TestValidateFilter(t *testing.T) {
	if err := ValidateFilter("icmp and host 10.0.0.1", 65536); err != nil {
		t.Errorf("ValidateFilter failed on valid filter: %v", err)
	}
	if err := ValidateFilter("((", 65536); err == nil {
		t.Error("Expected error for malformed filter")
	}
}
