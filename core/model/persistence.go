package model

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/YuminosukeSato/tenantscore/pkg/errors"
)

// Save は文書を検証し、2スペースインデントの JSON としてファイルに保存する
//
// 使用例:
//
//	doc := model.NewLinear(500, []float64{10, -12, 100, 50})
//	err := model.Save(doc, "model_linear.json")
func Save(doc Document, filename string) error {
	data, err := encodeIndented(doc)
	if err != nil {
		return err
	}

	// 同じディレクトリの一時ファイルに書き込んでから置き換える
	tmp, err := os.CreateTemp(filepath.Dir(filename), "."+filepath.Base(filename)+".tmp-*")
	if err != nil {
		return errors.Wrapf(err, "create temp file for %s", filename)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return errors.Wrapf(err, "write %s", filename)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return errors.Wrapf(err, "close %s", filename)
	}
	if err := os.Rename(tmpName, filename); err != nil {
		_ = os.Remove(tmpName)
		return errors.Wrapf(err, "rename into %s", filename)
	}
	return nil
}

// Write は文書を検証し、2スペースインデントの JSON として w に書き込む
func Write(doc Document, w io.Writer) error {
	data, err := encodeIndented(doc)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return errors.Wrap(err, "write model document")
	}
	return nil
}

func encodeIndented(doc Document) ([]byte, error) {
	data, err := Encode(doc)
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, data, "", "  "); err != nil {
		return nil, errors.Wrap(err, "indent model document")
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

// Load はファイルから文書を読み込み、検証する
//
// 使用例:
//
//	doc, err := model.Load("model_rf.json")
func Load(filename string) (Document, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", filename)
	}
	doc, err := Decode(data)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", filename)
	}
	return doc, nil
}

// Read は r から文書を読み込み、検証する
func Read(r io.Reader) (Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read model document")
	}
	return Decode(data)
}
