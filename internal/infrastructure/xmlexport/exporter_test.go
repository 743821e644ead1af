package xmlexport_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/xmlexport"
)

func sample() (*entity.StockItem, []*entity.Movement) {
	price := decimal.RequireFromString("2")
	total := decimal.RequireFromString("20")
	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	item := &entity.StockItem{
		ID: "item-1", Name: "Harina & Sal", Unit: "kg",
		Quantity:  decimal.RequireFromString("7"),
		Threshold: entity.FixedThreshold(decimal.RequireFromString("2")),
		UnitPrice: decimal.RequireFromString("3"), UnitCost: price, Status: entity.StatusNormal,
	}
	movs := []*entity.Movement{
		{ID: "m1", Seq: 1, ItemID: "item-1", Direction: entity.DirectionIn, Reason: entity.ReasonPurchase,
			Quantity: decimal.RequireFromString("10"), PreviousQuantity: decimal.Zero, ResultingQuantity: decimal.RequireFromString("10"),
			UnitPrice: &price, TotalCost: &total, CreatedAt: at, Actor: "ana"},
		{ID: "m2", Seq: 2, ItemID: "item-1", Direction: entity.DirectionOut, Reason: entity.ReasonSale,
			Quantity: decimal.RequireFromString("3"), PreviousQuantity: decimal.RequireFromString("10"), ResultingQuantity: decimal.RequireFromString("7"),
			CreatedAt: at.Add(time.Hour), Note: "mostrador"},
	}
	return item, movs
}

func TestExport_DocumentoYDigestEstables(t *testing.T) {
	item, movs := sample()
	e := xmlexport.NewExporter()

	doc1, digest1, err := e.Export(item, movs)
	require.NoError(t, err)
	doc2, digest2, err := e.Export(item, movs)
	require.NoError(t, err)

	assert.Equal(t, doc1, doc2)
	assert.Equal(t, digest1, digest2)
	assert.Len(t, digest1, 64)

	ok, err := xmlexport.Verify(doc1, digest1)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestExport_Contenido(t *testing.T) {
	item, movs := sample()
	doc, _, err := xmlexport.NewExporter().Export(item, movs)
	require.NoError(t, err)

	parsed := etree.NewDocument()
	require.NoError(t, parsed.ReadFromBytes(doc))
	root := parsed.Root()
	require.NotNil(t, root)
	assert.Equal(t, "Kardex", root.Tag)
	assert.Equal(t, "Harina & Sal", root.FindElement("./Item/Name").Text())
	assert.Equal(t, "fixed", root.FindElement("./Item/Threshold").SelectAttrValue("kind", ""))

	list := root.FindElements("./Movements/Movement")
	require.Len(t, list, 2)
	assert.Equal(t, "m1", list[0].SelectAttrValue("id", ""))
	assert.Equal(t, "20", list[0].FindElement("TotalCost").Text())
	assert.Nil(t, list[1].FindElement("TotalCost"))
	assert.Equal(t, "mostrador", list[1].FindElement("Note").Text())
}

func TestVerify_DetectaAlteraciones(t *testing.T) {
	item, movs := sample()
	doc, digest, err := xmlexport.NewExporter().Export(item, movs)
	require.NoError(t, err)

	tampered := bytes.Replace(doc, []byte(">3<"), []byte(">30<"), 1)
	require.NotEqual(t, doc, tampered)
	ok, err := xmlexport.Verify(tampered, digest)
	require.NoError(t, err)
	assert.False(t, ok)
}
