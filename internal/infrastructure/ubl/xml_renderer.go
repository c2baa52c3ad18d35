// Package ubl genera una representación XML de la factura inspirada en UBL 2.1.
// El documento se construye con etree y se entrega en forma canónica (C14N).
package ubl

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/ucarion/c14n"

	"github.com/jhoicas/Facturador-api/internal/application/export"
	domainbilling "github.com/jhoicas/Facturador-api/internal/domain/billing"
	"github.com/jhoicas/Facturador-api/internal/domain/entity"
)

// Namespaces UBL 2.1.
const (
	NamespaceInvoice = "urn:oasis:names:specification:ubl:schema:xsd:Invoice-2"
	NamespaceCAC     = "urn:oasis:names:specification:ubl:schema:xsd:CommonAggregateComponents-2"
	NamespaceCBC     = "urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2"
)

var _ export.Renderer = (*XMLRenderer)(nil)

// XMLRenderer implementa export.Renderer para el formato xml.
type XMLRenderer struct{}

// NewXMLRenderer construye el renderer.
func NewXMLRenderer() *XMLRenderer { return &XMLRenderer{} }

// ContentType tipo MIME del documento.
func (r *XMLRenderer) ContentType() string { return "application/xml" }

// Render construye el árbol XML y lo devuelve canonicalizado.
func (r *XMLRenderer) Render(_ context.Context, inv *entity.Invoice) ([]byte, error) {
	if inv == nil {
		return nil, fmt.Errorf("ubl: factura nula")
	}
	doc := etree.NewDocument()
	root := doc.CreateElement("Invoice")
	root.CreateAttr("xmlns", NamespaceInvoice)
	root.CreateAttr("xmlns:cac", NamespaceCAC)
	root.CreateAttr("xmlns:cbc", NamespaceCBC)

	cur := domainbilling.ResolveCurrency(inv)
	cbc(root, "UBLVersionID", "2.1")
	cbc(root, "ID", inv.InvoiceNumber)
	cbc(root, "UUID", inv.ID)
	cbc(root, "IssueDate", inv.Date.Format("2006-01-02"))
	cbc(root, "DueDate", inv.DueDate.Format("2006-01-02"))
	cbc(root, "InvoiceTypeCode", "380")
	if inv.Notes != "" {
		cbc(root, "Note", inv.Notes)
	}
	cbc(root, "DocumentCurrencyCode", cur)
	cbc(root, "StatusCode", inv.Status)

	supplier := root.CreateElement("cac:AccountingSupplierParty")
	party(supplier, inv.Company.Name, inv.Company.Address, inv.Company.City, inv.Company.PostalCode,
		inv.Company.Country, inv.Company.Email, inv.Company.TaxID)

	customer := root.CreateElement("cac:AccountingCustomerParty")
	party(customer, inv.Client.Name, inv.Client.Address, inv.Client.City, inv.Client.PostalCode,
		inv.Client.Country, inv.Client.Email, "")

	if inv.Terms != "" {
		terms := root.CreateElement("cac:PaymentTerms")
		cbc(terms, "Note", inv.Terms)
	}

	subtotal := domainbilling.Subtotal(inv.Items)
	tax := domainbilling.Tax(subtotal, inv.TaxRate)

	taxTotal := root.CreateElement("cac:TaxTotal")
	amount(taxTotal, "cbc:TaxAmount", tax, cur)
	sub := taxTotal.CreateElement("cac:TaxSubtotal")
	amount(sub, "cbc:TaxableAmount", subtotal, cur)
	amount(sub, "cbc:TaxAmount", tax, cur)
	cat := sub.CreateElement("cac:TaxCategory")
	cbc(cat, "Percent", inv.TaxRate.String())

	totals := root.CreateElement("cac:LegalMonetaryTotal")
	amount(totals, "cbc:LineExtensionAmount", subtotal, cur)
	amount(totals, "cbc:TaxExclusiveAmount", subtotal, cur)
	amount(totals, "cbc:TaxInclusiveAmount", subtotal.Add(tax), cur)
	amount(totals, "cbc:PayableAmount", subtotal.Add(tax), cur)

	for i, it := range inv.Items {
		line := root.CreateElement("cac:InvoiceLine")
		cbc(line, "ID", fmt.Sprintf("%d", i+1))
		qty := line.CreateElement("cbc:InvoicedQuantity")
		qty.SetText(it.Quantity.String())
		amount(line, "cbc:LineExtensionAmount", domainbilling.LineAmount(it), cur)
		item := line.CreateElement("cac:Item")
		cbc(item, "Description", it.Description)
		price := line.CreateElement("cac:Price")
		amount(price, "cbc:PriceAmount", it.Rate, cur)
	}

	raw, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("ubl: serializar XML: %w", err)
	}
	out, err := canonicalize(raw)
	if err != nil {
		return nil, fmt.Errorf("ubl: canonicalizar XML: %w", err)
	}
	return out, nil
}

func canonicalize(data []byte) ([]byte, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Entity = map[string]string{}
	return c14n.Canonicalize(dec)
}

func cbc(parent *etree.Element, tag, value string) *etree.Element {
	el := parent.CreateElement("cbc:" + tag)
	el.SetText(value)
	return el
}

func amount(parent *etree.Element, tag string, v decimal.Decimal, currency string) {
	el := parent.CreateElement(tag)
	el.CreateAttr("currencyID", currency)
	el.SetText(v.StringFixed(2))
}

func party(parent *etree.Element, name, street, city, postal, country, email, taxID string) {
	p := parent.CreateElement("cac:Party")
	pn := p.CreateElement("cac:PartyName")
	cbc(pn, "Name", name)
	addr := p.CreateElement("cac:PostalAddress")
	cbc(addr, "StreetName", street)
	cbc(addr, "CityName", city)
	cbc(addr, "PostalZone", postal)
	c := addr.CreateElement("cac:Country")
	cbc(c, "Name", country)
	if taxID != "" {
		scheme := p.CreateElement("cac:PartyTaxScheme")
		cbc(scheme, "CompanyID", taxID)
	}
	if email != "" {
		contact := p.CreateElement("cac:Contact")
		cbc(contact, "ElectronicMail", email)
	}
}
