package main

import "testing"

func TestProfileLine(t *testing.T) {
	line := profileLine([]float64{0.0, 0.5, 1.0})
	want := "row cloud profile  mean=0.5000 sd=0.5000 p5=0.0000 p50=0.5000 p95=1.0000"
	if line != want {
		t.Errorf("got  %q\nwant %q", line, want)
	}
}

func TestProfileLineEmpty(t *testing.T) {
	line := profileLine(nil)
	want := "row cloud profile  mean=0.0000 sd=0.0000 p5=0.0000 p50=0.0000 p95=0.0000"
	if line != want {
		t.Errorf("got  %q\nwant %q", line, want)
	}
}
