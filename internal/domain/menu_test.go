package domain

import (
	"errors"
	"testing"
)

func TestParseCourse(t *testing.T) {
	tests := []struct {
		label  string
		want   Course
		wantOK bool
	}{
		{"starter", CourseStarter, true},
		{"Starter", CourseStarter, true},
		{" MAIN ", CourseMain, true},
		{"dessert", CourseDessert, true},
		{"", CourseUnset, true},
		{"brunch", CourseUnset, false},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, ok := ParseCourse(tt.label)
			if got != tt.want || ok != tt.wantOK {
				t.Fatalf("ParseCourse(%q) = (%q, %t), want (%q, %t)", tt.label, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"59.99", "59.99", false},
		{"5", "5", false},
		{"0", "0", false},
		{" 12.5 ", "12.5", false},
		{"", "", true},
		{"abc", "", true},
		{"-0.01", "", true},
		{"NaN", "", true},
		{"1,50", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePrice(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidPrice) {
					t.Fatalf("expected ErrInvalidPrice, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.String() != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got.String())
			}
		})
	}
}

func TestNewMenuItem(t *testing.T) {
	item, err := NewMenuItem(" Caesar Salad ", "Crispy", "Starter", "59.9")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := MenuItem{DishName: "Caesar Salad", Description: "Crispy", Course: CourseStarter, Price: "59.9"}
	if item != want {
		t.Fatalf("expected %+v, got %+v", want, item)
	}

	if _, err := NewMenuItem("x", "", "", "free"); !errors.Is(err, ErrInvalidPrice) {
		t.Fatalf("expected ErrInvalidPrice, got %v", err)
	}
}

func TestValidationError(t *testing.T) {
	err := error(NewValidationError(ErrMissingFields, FieldDishName, FieldPrice))

	if !errors.Is(err, ErrMissingFields) {
		t.Fatal("expected errors.Is to match ErrMissingFields")
	}
	if !IsValidation(err) {
		t.Fatal("expected IsValidation to be true")
	}
	if IsValidation(ErrIndexOutOfRange) {
		t.Fatal("expected IsValidation to be false for index errors")
	}
	if got := err.Error(); got != "missing required fields: dishName, price" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestFilterIsZero(t *testing.T) {
	if !(Filter{Text: "  "}).IsZero() {
		t.Fatal("blank text filter should be zero")
	}
	if (Filter{Course: CourseMain}).IsZero() {
		t.Fatal("course filter should not be zero")
	}
}
