package converter

import (
	dto "casino_engine/internal/api/dto/session"
	"casino_engine/internal/model"
	"errors"
	"testing"
)

func TestToMove(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		req     dto.MoveRequest
		want    model.Move
		wantErr error
	}{
		{name: "reveal", req: dto.MoveRequest{Move: "Reveal", Index: 7}, want: model.Move{Kind: model.MoveReveal, Index: 7}},
		{name: "hold", req: dto.MoveRequest{Move: "draw", Hold: []int{0, 4}}, want: model.Move{Kind: model.MoveDraw, Hold: [5]bool{true, false, false, false, true}}},
		{name: "hold out of range", req: dto.MoveRequest{Move: "draw", Hold: []int{5}}, wantErr: model.ErrInvalidMove},
	}
	for _, tt := range tests {
		got, err := ToMove(tt.req)
		if !errors.Is(err, tt.wantErr) {
			t.Fatalf("%s: error = %v, want %v", tt.name, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("%s: ToMove() = %+v, want %+v", tt.name, got, tt.want)
		}
	}
}
