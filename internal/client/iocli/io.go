// Package iocli абстрагирует ввод и вывод консольного клиента.
package iocli

//go:generate moq -out io_mock.go . IO

// IO консольный ввод-вывод команд клиента
type IO interface {
	Println(a ...any)
	Printf(format string, a ...any)
	// ReadInput печатает prompt и читает одну строку без завершающих пробелов
	ReadInput(prompt string) (string, error)
	Write(p []byte) (n int, err error)
}
