package session

// ExampleSource is the program placed in the editor at startup and by
// InsertExample.
const ExampleSource = `// JavaScript example code
function greet(name) {
    return "Hello, " + name + "!";
}

const add = (a, b) => a + b;

class Person {
    constructor(name, age) {
        this.name = name;
        this.age = age;
    }

    sayHello() {
        console.log(` + "`" + `Hi, I'm ${this.name} and I'm ${this.age} years old.` + "`" + `);
    }
}

const numbers = [1, 2, 3].map(n => n * 2);
`
