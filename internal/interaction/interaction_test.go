package interaction

import (
	"testing"

	"github.com/google/uuid"
)

func TestTypeValid(t *testing.T) {
	for _, typ := range []Type{TypePing, TypeDailyQuestion, TypeRemember, TypeGuess, TypeWeeklyCheckin, TypeTestCompleted} {
		if !typ.Valid() {
			t.Errorf("%q should be valid", typ)
		}
	}
	if Type("high_five").Valid() {
		t.Error("unknown type should not be valid")
	}
}

func TestDecodePayloadUnknownType(t *testing.T) {
	if _, err := DecodePayload(Type("high_five"), nil); err == nil {
		t.Fatal("expected error for unknown type")
	}
}

func TestDecodePayloadTestCompleted(t *testing.T) {
	id := uuid.New()
	raw, err := EncodePayload(TestCompletedPayload{TestID: id, Score: 73})
	if err != nil {
		t.Fatal(err)
	}

	p, err := DecodePayload(TypeTestCompleted, raw)
	if err != nil {
		t.Fatal(err)
	}
	tc, ok := p.(*TestCompletedPayload)
	if !ok {
		t.Fatalf("got %T, want *TestCompletedPayload", p)
	}
	if tc.TestID != id || tc.Score != 73 {
		t.Fatalf("round trip mismatch: %+v", tc)
	}
}

func TestEncodePayloadNil(t *testing.T) {
	raw, err := EncodePayload(nil)
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != "{}" {
		t.Fatalf("nil payload encoded as %s", raw)
	}
}
