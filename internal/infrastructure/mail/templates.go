package mail

const verifyEmailTemplate = `<html>
<body style="font-family: sans-serif; color: #333;">
  <h2>Welcome to TalentHub</h2>
  <p>Confirm your email address to activate your account.</p>
  <p><a href="{{action_url}}" style="display:inline-block;padding:10px 20px;background:#2563eb;color:#fff;text-decoration:none;border-radius:4px;">Verify email</a></p>
  <p>If the button does not work, open this link:</p>
  <p><a href="{{action_url}}">{{action_url}}</a></p>
  <p>If you did not create an account, you can ignore this message.</p>
</body>
</html>`

const passwordResetTemplate = `<html>
<body style="font-family: sans-serif; color: #333;">
  <h2>Password reset</h2>
  <p>We received a request to reset your password.</p>
  <p><a href="{{action_url}}" style="display:inline-block;padding:10px 20px;background:#2563eb;color:#fff;text-decoration:none;border-radius:4px;">Reset password</a></p>
  <p>If the button does not work, open this link:</p>
  <p><a href="{{action_url}}">{{action_url}}</a></p>
  <p>The link expires in one hour. If you did not request a reset, ignore this message.</p>
</body>
</html>`
