package notifications

import "html/template"

var merchantOrderTemplate = template.Must(template.New("merchant_order").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #16a34a;">🌱 Nueva orden de compra</h2>
  <p><strong>Pedido:</strong> {{.Order.OrderNumber}}</p>

  <h3>Datos del cliente</h3>
  <ul>
    <li><strong>Nombre:</strong> {{.Order.CustomerName}}</li>
    <li><strong>Email:</strong> {{.Order.CustomerEmail}}</li>
    <li><strong>Teléfono:</strong> {{.Order.CustomerPhone}}</li>
    <li><strong>Dirección:</strong> {{.Order.ShippingAddress}}, {{.Order.ShippingCity}} {{.Order.ShippingPostalCode}}</li>
  </ul>

  <h3>Productos</h3>
  <table style="width: 100%; border-collapse: collapse;">
    <thead>
      <tr style="background: #f0fdf4;">
        <th style="text-align: left; padding: 8px;">Producto</th>
        <th style="text-align: center; padding: 8px;">Cantidad</th>
        <th style="text-align: right; padding: 8px;">Precio</th>
        <th style="text-align: right; padding: 8px;">Total</th>
      </tr>
    </thead>
    <tbody>
      {{range .Items}}
      <tr>
        <td style="padding: 8px;">{{.Name}}{{if .Subtitle}} <small>({{.Subtitle}})</small>{{end}}</td>
        <td style="text-align: center; padding: 8px;">{{.Quantity}}</td>
        <td style="text-align: right; padding: 8px;">{{.UnitPrice}}</td>
        <td style="text-align: right; padding: 8px;">{{.LineTotal}}</td>
      </tr>
      {{end}}
    </tbody>
  </table>

  <p style="text-align: right;">
    Subtotal: {{.Subtotal}}<br/>
    Envío: {{if .FreeShipping}}Gratis{{else}}{{.ShippingCost}}{{end}}<br/>
    <strong>Total: {{.Total}}</strong>
  </p>

  {{if .Notes}}<p><strong>Notas:</strong> {{.Notes}}</p>{{end}}
</div>
`))

var customerOrderTemplate = template.Must(template.New("customer_order").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #16a34a;">✅ ¡Recibimos tu pedido!</h2>
  <p>Hola {{.Order.CustomerName}},</p>
  <p>Tu pedido <strong>{{.Order.OrderNumber}}</strong> fue recibido y está siendo preparado.
  Te contactaremos por WhatsApp para coordinar el pago y el envío.</p>

  <h3>Resumen</h3>
  <table style="width: 100%; border-collapse: collapse;">
    <tbody>
      {{range .Items}}
      <tr>
        <td style="padding: 6px;">{{.Quantity}} × {{.Name}}</td>
        <td style="text-align: right; padding: 6px;">{{.LineTotal}}</td>
      </tr>
      {{end}}
      <tr>
        <td style="padding: 6px;">Envío</td>
        <td style="text-align: right; padding: 6px;">{{if .FreeShipping}}Gratis{{else}}{{.ShippingCost}}{{end}}</td>
      </tr>
      <tr style="font-weight: bold;">
        <td style="padding: 6px;">Total</td>
        <td style="text-align: right; padding: 6px;">{{.Total}}</td>
      </tr>
    </tbody>
  </table>

  <p>Dirección de entrega: {{.Order.ShippingAddress}}, {{.Order.ShippingCity}} {{.Order.ShippingPostalCode}}</p>
  <p>Gracias por comprar en Chex Seeds 🌱</p>
</div>
`))

var contactMessageTemplate = template.Must(template.New("contact_message").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #16a34a;">📬 Nuevo mensaje de contacto</h2>
  <ul>
    <li><strong>Nombre:</strong> {{.Name}}</li>
    <li><strong>Email:</strong> {{.Email}}</li>
    <li><strong>Asunto:</strong> {{.Subject}}</li>
  </ul>
  <h3>Mensaje</h3>
  <p style="white-space: pre-wrap;">{{.Message}}</p>
</div>
`))
