// Package xmlexport serializa el kardex de un ítem en XML canónico (C14N) para auditoría.
//
// El digest SHA-256 se calcula sobre los mismos bytes canónicos que se devuelven, de modo que
// un auditor puede recalcularlo sin depender del formato de salida del serializador.
package xmlexport

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"strconv"
	"time"

	"github.com/beevik/etree"
	"github.com/ucarion/c14n"

	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// Namespace del documento de kardex.
const Namespace = "urn:inventario-ledger:kardex:1"

var _ inventory.LedgerExporter = (*Exporter)(nil)

// Exporter implementa inventory.LedgerExporter con etree + c14n.
type Exporter struct{}

// NewExporter construye el exportador.
func NewExporter() *Exporter { return &Exporter{} }

// Export arma el documento, lo canoniza y devuelve los bytes con su digest (hex).
func (e *Exporter) Export(item *entity.StockItem, movements []*entity.Movement) ([]byte, string, error) {
	if item == nil {
		return nil, "", fmt.Errorf("xmlexport: ítem nil")
	}
	doc := etree.NewDocument()
	root := doc.CreateElement("Kardex")
	root.CreateAttr("xmlns", Namespace)

	it := root.CreateElement("Item")
	it.CreateAttr("id", item.ID)
	it.CreateElement("Name").SetText(item.Name)
	it.CreateElement("Unit").SetText(item.Unit)
	it.CreateElement("Quantity").SetText(item.Quantity.String())
	th := it.CreateElement("Threshold")
	th.CreateAttr("kind", string(item.Threshold.Kind))
	if v, ok := item.Threshold.Limit(); ok {
		th.SetText(v.String())
	}
	it.CreateElement("UnitPrice").SetText(item.UnitPrice.String())
	it.CreateElement("UnitCost").SetText(item.UnitCost.String())
	it.CreateElement("Status").SetText(string(item.Status))

	list := root.CreateElement("Movements")
	list.CreateAttr("count", strconv.Itoa(len(movements)))
	for _, m := range movements {
		el := list.CreateElement("Movement")
		el.CreateAttr("id", m.ID)
		el.CreateAttr("seq", strconv.FormatInt(m.Seq, 10))
		el.CreateElement("Date").SetText(m.CreatedAt.UTC().Format(time.RFC3339Nano))
		el.CreateElement("Direction").SetText(string(m.Direction))
		el.CreateElement("Reason").SetText(string(m.Reason))
		el.CreateElement("Quantity").SetText(m.Quantity.String())
		el.CreateElement("Previous").SetText(m.PreviousQuantity.String())
		el.CreateElement("Resulting").SetText(m.ResultingQuantity.String())
		if m.UnitPrice != nil {
			el.CreateElement("UnitPrice").SetText(m.UnitPrice.String())
		}
		if m.TotalCost != nil {
			el.CreateElement("TotalCost").SetText(m.TotalCost.String())
		}
		if m.Note != "" {
			el.CreateElement("Note").SetText(m.Note)
		}
		if m.Actor != "" {
			el.CreateElement("Actor").SetText(m.Actor)
		}
	}

	raw, err := doc.WriteToBytes()
	if err != nil {
		return nil, "", fmt.Errorf("xmlexport: serializar: %w", err)
	}
	canonical, err := canonicalize(raw)
	if err != nil {
		return nil, "", fmt.Errorf("xmlexport: canonizar: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return canonical, hex.EncodeToString(sum[:]), nil
}

// Verify recalcula el digest de un documento exportado.
func Verify(doc []byte, digest string) (bool, error) {
	canonical, err := canonicalize(doc)
	if err != nil {
		return false, err
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]) == digest, nil
}

func canonicalize(data []byte) ([]byte, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Entity = map[string]string{}
	return c14n.Canonicalize(dec)
}
