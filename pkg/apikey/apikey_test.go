package apikey

import "testing"

func TestVerify(t *testing.T) {
	hash, err := HashKey("scanner-secret")
	if err != nil {
		t.Fatalf("HashKey() error = %v", err)
	}

	checker := New(map[string]string{"ocr-gateway": hash})

	if !checker.Verify("ocr-gateway", "scanner-secret") {
		t.Error("Verify() = false for correct key")
	}
	if checker.Verify("ocr-gateway", "wrong-key") {
		t.Error("Verify() = true for wrong key")
	}
	if checker.Verify("unknown-client", "scanner-secret") {
		t.Error("Verify() = true for unknown client")
	}
}

func TestVerifyEmptyChecker(t *testing.T) {
	checker := New(nil)
	if checker.Verify("any", "key") {
		t.Error("Verify() = true on empty checker")
	}
}
