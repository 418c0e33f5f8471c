package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/reader"
	"github.com/xitongsys/parquet-go/writer"

	"flintdb/internal/types"
)

// parquetRecord is the persisted shape of one exported row. Field values
// are carried as a JSON document keyed by column name so tables of any
// arity share one Parquet schema.
type parquetRecord struct {
	Table    string `parquet:"name=table, type=BYTE_ARRAY, convertedtype=UTF8"`
	DataJSON string `parquet:"name=data_json, type=BYTE_ARRAY, convertedtype=UTF8"`
}

// ExportParquet writes a read-only snapshot of the table to
// destDir/<table>.parquet with SNAPPY compression and returns the file
// path. The store itself is not modified.
func (s *Store) ExportParquet(table, destDir string) (string, error) {
	columns, rows, err := s.Rows.readRows(table)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}
	path := filepath.Join(destDir, table+".parquet")

	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return "", fmt.Errorf("failed to create Parquet file: %w", err)
	}
	defer fw.Close()

	pw, err := writer.NewParquetWriter(fw, new(parquetRecord), 4)
	if err != nil {
		return "", fmt.Errorf("failed to create Parquet writer: %w", err)
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for _, row := range rows {
		doc := make(map[string]string, len(columns))
		for i, col := range columns {
			doc[col.Name] = row[i]
		}
		data, err := json.Marshal(doc)
		if err != nil {
			return "", fmt.Errorf("failed to marshal row of table %s: %w", table, err)
		}
		record := &parquetRecord{Table: table, DataJSON: string(data)}
		if err := pw.Write(record); err != nil {
			return "", fmt.Errorf("failed to write Parquet row: %w", err)
		}
	}

	if err := pw.WriteStop(); err != nil {
		return "", fmt.Errorf("failed to finalize Parquet file: %w", err)
	}

	types.GlobalLogger.Info("exported table %s (%d rows) to %s", table, len(rows), path)
	return path, nil
}

// ReadParquet reads an exported snapshot back as one field map per row,
// keyed by column name.
func ReadParquet(path, table string) ([]map[string]string, error) {
	fr, err := local.NewLocalFileReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Parquet file: %w", err)
	}
	defer fr.Close()

	pr, err := reader.NewParquetReader(fr, new(parquetRecord), 4)
	if err != nil {
		return nil, fmt.Errorf("failed to create Parquet reader: %w", err)
	}
	defer pr.ReadStop()

	numRows := int(pr.GetNumRows())
	if numRows == 0 {
		return []map[string]string{}, nil
	}
	records := make([]parquetRecord, numRows)
	if err := pr.Read(&records); err != nil {
		return nil, fmt.Errorf("failed to read Parquet rows: %w", err)
	}

	rows := make([]map[string]string, 0, numRows)
	for _, record := range records {
		if record.Table != table {
			continue
		}
		var doc map[string]string
		if err := json.Unmarshal([]byte(record.DataJSON), &doc); err != nil {
			return nil, fmt.Errorf("failed to unmarshal exported row: %w", err)
		}
		rows = append(rows, doc)
	}
	return rows, nil
}
