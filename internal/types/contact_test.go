package types

import "testing"

func TestParseContactLabel_RejectsUnknownName(t *testing.T) {
	if _, ok := ParseContactLabel("GENERAL_CONTRACTOR"); ok {
		t.Fatalf("expected unknown label to be rejected")
	}
	label, ok := ParseContactLabel("  supplier ")
	if !ok || label != LabelSupplier {
		t.Fatalf("expected SUPPLIER, got %q ok=%v", label, ok)
	}
}

func TestParseContactLabels_DropsUnknownNamesKeepsOrder(t *testing.T) {
	labels := ParseContactLabels([]string{"OWNER", "bogus", "SUPPLIER", ""})
	if len(labels) != 2 {
		t.Fatalf("expected 2 labels, got %v", labels)
	}
	if labels[0] != LabelOwner || labels[1] != LabelSupplier {
		t.Fatalf("unexpected order: %v", labels)
	}
}

func TestMergeLabels_PreservesOrderAndIsIdempotent(t *testing.T) {
	merged := MergeLabels([]ContactLabel{LabelBuilder, LabelOwner}, LabelOwner, LabelSupplier)
	want := []ContactLabel{LabelBuilder, LabelOwner, LabelSupplier}
	if len(merged) != len(want) {
		t.Fatalf("expected %v, got %v", want, merged)
	}
	for i := range want {
		if merged[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, merged)
		}
	}

	again := MergeLabels(merged, LabelOwner, LabelSupplier)
	if len(again) != len(merged) {
		t.Fatalf("merge is not idempotent: %v", again)
	}
}

func TestContactValidate_RejectsBlankRequiredFields(t *testing.T) {
	cases := []struct {
		name    string
		contact Contact
	}{
		{"blank first name", Contact{FirstName: " ", LastName: "Doe", Email: "d@x.com"}},
		{"blank last name", Contact{FirstName: "Jo", LastName: "", Email: "d@x.com"}},
		{"blank email", Contact{FirstName: "Jo", LastName: "Doe", Email: "  "}},
	}
	for _, tc := range cases {
		err := tc.contact.Validate()
		if err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
		if _, ok := err.(*BlankFieldError); !ok {
			t.Fatalf("%s: expected BlankFieldError, got %T", tc.name, err)
		}
	}

	valid := Contact{FirstName: "Jo", LastName: "Doe", Email: "jo@x.com"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid contact, got %v", err)
	}
}
