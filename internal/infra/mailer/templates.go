package mailer

import "html/template"

var funcs = template.FuncMap{
	"money": func(v any) string {
		if m, ok := v.(interface{ StringFixed(int32) string }); ok {
			return m.StringFixed(2) + " $"
		}
		return ""
	},
}

var confirmationTmpl = template.Must(template.New("confirmation").Funcs(funcs).Parse(`<html><body style="font-family:Arial, sans-serif; line-height:1.6;">
<h2 style="color:#2d3748">Thank you for your order{{if .FirstName}}, {{.FirstName}}{{end}}!</h2>
<p>Order <strong>#{{.OrderID}}</strong> has been received.</p>
<p><strong>Total price:</strong> {{money .TotalAmount}}</p>
{{- if .Items}}
<h3>Order details:</h3>
<table border="1" cellpadding="8" cellspacing="0" style="border-collapse: collapse; width:100%;">
<thead style="background-color:#f2f2f2;"><tr>
<th style="text-align:left;">Product Name</th>
<th style="text-align:right;">Quantity</th>
<th style="text-align:right;">Unit Price</th>
<th style="text-align:right;">Total Price</th>
</tr></thead>
<tbody>
{{- range .Items}}
<tr><td>{{.Name}}</td><td style="text-align:right;">{{.Quantity}}</td><td style="text-align:right;">{{money .UnitPrice}}</td><td style="text-align:right;">{{money .LineTotal}}</td></tr>
{{- end}}
</tbody>
</table>
{{- end}}
<p style="color:gray; font-size:12px;">&copy; E-Commerce App</p>
</body></html>
`))

var cancellationTmpl = template.Must(template.New("cancellation").Funcs(funcs).Parse(`<html><body style="font-family:Arial, sans-serif; line-height:1.6;">
<h2 style="color:#2d3748">Your order was cancelled</h2>
<p>We could not complete order <strong>#{{.OrderID}}</strong>.</p>
{{- if .Reason}}
<p><strong>Reason:</strong> {{.Reason}}</p>
{{- end}}
<p>No payment has been taken. You are welcome to place the order again.</p>
<p style="color:gray; font-size:12px;">&copy; E-Commerce App</p>
</body></html>
`))
