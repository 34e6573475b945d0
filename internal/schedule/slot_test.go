package schedule

import (
	"testing"
)

func TestToMinutes(t *testing.T) {
	type args struct {
		value string
	}
	tests := []struct {
		name    string
		args    args
		want    int
		wantErr bool
	}{
		{
			name: "should parse midnight",
			args: args{value: "00:00"},
			want: 0,
		},
		{
			name: "should parse a morning time",
			args: args{value: "09:30"},
			want: 570,
		},
		{
			name: "should parse the last minute of the day",
			args: args{value: "23:59"},
			want: 1439,
		},
		{
			name:    "should reject a value without a colon",
			args:    args{value: "0930"},
			wantErr: true,
		},
		{
			name:    "should reject a value with too many parts",
			args:    args{value: "09:30:00"},
			wantErr: true,
		},
		{
			name:    "should reject a non numeric hour",
			args:    args{value: "aa:30"},
			wantErr: true,
		},
		{
			name:    "should reject a non numeric minute",
			args:    args{value: "09:bb"},
			wantErr: true,
		},
		{
			name:    "should reject an hour out of range",
			args:    args{value: "24:00"},
			wantErr: true,
		},
		{
			name:    "should reject a minute out of range",
			args:    args{value: "09:60"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToMinutes(tt.args.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ToMinutes() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if err == nil && got != tt.want {
				t.Errorf("ToMinutes() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSlotOverlaps(t *testing.T) {
	type args struct {
		a Slot
		b Slot
	}
	tests := []struct {
		name string
		args args
		want bool
	}{
		{
			name: "touching slots should not overlap",
			args: args{a: Slot{Start: "09:00", End: "09:30"}, b: Slot{Start: "09:30", End: "10:00"}},
			want: false,
		},
		{
			name: "partially overlapping slots should overlap",
			args: args{a: Slot{Start: "09:00", End: "09:30"}, b: Slot{Start: "09:15", End: "09:45"}},
			want: true,
		},
		{
			name: "contained slot should overlap",
			args: args{a: Slot{Start: "09:00", End: "11:00"}, b: Slot{Start: "09:30", End: "10:00"}},
			want: true,
		},
		{
			name: "disjoint slots should not overlap",
			args: args{a: Slot{Start: "09:00", End: "09:30"}, b: Slot{Start: "14:00", End: "14:30"}},
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.args.a.Overlaps(tt.args.b)
			if err != nil {
				t.Fatalf("Overlaps() unexpected error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
			reversed, err := tt.args.b.Overlaps(tt.args.a)
			if err != nil {
				t.Fatalf("Overlaps() unexpected error = %v", err)
			}
			if reversed != tt.want {
				t.Errorf("Overlaps() reversed = %v, want %v", reversed, tt.want)
			}
		})
	}
}

func TestSlotValidate(t *testing.T) {
	tests := []struct {
		name    string
		slot    Slot
		wantErr bool
	}{
		{
			name: "should accept a well formed slot",
			slot: Slot{Start: "09:00", End: "09:30"},
		},
		{
			name:    "should reject a slot ending before it starts",
			slot:    Slot{Start: "10:00", End: "09:30"},
			wantErr: true,
		},
		{
			name:    "should reject a zero length slot",
			slot:    Slot{Start: "09:00", End: "09:00"},
			wantErr: true,
		},
		{
			name:    "should reject a malformed start",
			slot:    Slot{Start: "9h00", End: "09:30"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.slot.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		name    string
		label   string
		want    Weekday
		wantErr bool
	}{
		{
			name:  "should parse a short label",
			label: "Mon",
			want:  Monday,
		},
		{
			name:  "should parse a long label",
			label: "Wednesday",
			want:  Wednesday,
		},
		{
			name:    "should reject an unknown label",
			label:   "Funday",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseWeekday(tt.label)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseWeekday() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseWeekday() = %v, want %v", got, tt.want)
			}
		})
	}
}
