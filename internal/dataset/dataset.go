// Package dataset содержит табличное представление входных данных:
// аналог датафрейма, из которого конвейер берет идентификаторы и кампании.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

// Table хранит таблицу в памяти: заголовок и строки со строковыми значениями.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]string
}

// New создает таблицу из заголовка и строк.
// Строка с числом значений, не совпадающим с заголовком, считается ошибкой.
func New(columns []string, rows [][]string) (*Table, error) {
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("строка %d содержит %d значений, ожидалось %d", i, len(row), len(columns))
		}
	}

	index := make(map[string]int, len(columns))
	for i, name := range columns {
		index[name] = i
	}

	return &Table{columns: columns, index: index, rows: rows}, nil
}

// ReadCSV читает таблицу из CSV. Первая запись — заголовок.
func ReadCSV(r io.Reader) (*Table, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.New("CSV пуст: отсутствует заголовок")
	}
	return New(records[0], records[1:])
}

// ReadCSVFile читает таблицу из CSV-файла.
func ReadCSVFile(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return ReadCSV(file)
}

// Columns возвращает имена колонок в порядке заголовка.
func (t *Table) Columns() []string {
	return t.columns
}

// HasColumn сообщает, есть ли колонка с таким именем.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Len возвращает число строк таблицы.
func (t *Table) Len() int {
	return len(t.rows)
}

// Value возвращает значение колонки name в строке i.
// Колонка должна существовать (проверяется валидатором до обхода таблицы).
func (t *Table) Value(i int, name string) string {
	return t.rows[i][t.index[name]]
}
