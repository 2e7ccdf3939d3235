package assert

import "fmt"

func NotNil(value any) {
	if value == nil {
		panic("expected value to be not nil")
	}
}

func NotEmptyStr(str string) {
	if str == "" {
		panic("expected string to be non-empty")
	}
}

func NotNegative(name string, value int) {
	if value < 0 {
		panic(fmt.Sprintf("expected %s to be >= 0, got %d", name, value))
	}
}
